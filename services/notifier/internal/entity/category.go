package entity

import "fmt"

const (
	CollectionNotifications = "notifications"
	CollectionLostItems     = "lost_items"
	CollectionFoundItems    = "found_items"
	CollectionNotices       = "notices"
	CollectionEvents        = "events"
)

// Mode selects how recipients are resolved.
type Mode string

const (
	// ModeSingle targets the user referenced by the document.
	ModeSingle Mode = "single"
	// ModeBroadcast targets every user holding a token.
	ModeBroadcast Mode = "broadcast"
)

// Category describes how one collection turns into a push notification.
// Render is only set for broadcast categories; personal notifications carry
// their own title and body.
type Category struct {
	Collection string
	Mode       Mode
	Tag        string
	Render     func(ev TriggerEvent) (title, body string)
}

// Tags are consumed by the mobile client for routing. lost_items maps to
// "match" and found_items to "resolved"; the pairing awaits confirmation from
// the app owners and must not be swapped here.
const (
	TagGeneral  = "general"
	TagMatch    = "match"
	TagResolved = "resolved"
	TagExam     = "exam"
	TagEvent    = "event"
)

var categories = map[string]Category{
	CollectionNotifications: {
		Collection: CollectionNotifications,
		Mode:       ModeSingle,
		Tag:        TagGeneral,
	},
	CollectionLostItems: {
		Collection: CollectionLostItems,
		Mode:       ModeBroadcast,
		Tag:        TagMatch,
		Render: func(ev TriggerEvent) (string, string) {
			return "🔔 Lost Item Alert",
				fmt.Sprintf("%s reported a lost %s at %s", ev.String("userName"), ev.String("title"), ev.String("location"))
		},
	},
	CollectionFoundItems: {
		Collection: CollectionFoundItems,
		Mode:       ModeBroadcast,
		Tag:        TagResolved,
		Render: func(ev TriggerEvent) (string, string) {
			return "✅ Found Item Posted",
				fmt.Sprintf("%s found a %s at %s", ev.String("userName"), ev.String("title"), ev.String("location"))
		},
	},
	CollectionNotices: {
		Collection: CollectionNotices,
		Mode:       ModeBroadcast,
		Tag:        TagExam,
		Render: func(ev TriggerEvent) (string, string) {
			return fmt.Sprintf("📌 New Notice: %s", ev.String("category")), ev.String("title")
		},
	},
	CollectionEvents: {
		Collection: CollectionEvents,
		Mode:       ModeBroadcast,
		Tag:        TagEvent,
		Render: func(ev TriggerEvent) (string, string) {
			return fmt.Sprintf("🎉 New Event: %s", ev.String("category")),
				fmt.Sprintf("%s - %s", ev.String("society"), ev.String("title"))
		},
	},
}

func LookupCategory(collection string) (Category, bool) {
	c, ok := categories[collection]
	return c, ok
}

// WatchedCollections lists the collections with a registered category in a stable order.
func WatchedCollections() []string {
	return []string{
		CollectionNotifications,
		CollectionLostItems,
		CollectionFoundItems,
		CollectionNotices,
		CollectionEvents,
	}
}
