package persistent

import (
	"strings"

	"campus-hub/services/notifier/internal/model"
)

// ToDeliveryToken returns the trimmed token of m, or "" when absent.
func ToDeliveryToken(m *model.UserModel) string {
	if m == nil || m.FCMToken == nil {
		return ""
	}
	return strings.TrimSpace(*m.FCMToken)
}

// ToTokenSet keeps every present token once, in first-seen order.
func ToTokenSet(models []model.UserModel) []string {
	seen := make(map[string]struct{}, len(models))
	tokens := make([]string, 0, len(models))
	for i := range models {
		token := ToDeliveryToken(&models[i])
		if token == "" {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		tokens = append(tokens, token)
	}
	return tokens
}
