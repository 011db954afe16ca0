package model

type UserModel struct {
	ID       string  `gorm:"column:id;type:varchar(128);primaryKey"`
	FCMToken *string `gorm:"column:fcm_token;type:text"`
}

func (UserModel) TableName() string {
	return "users"
}
