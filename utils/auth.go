package utils

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// IsAdmin checks whether a user ID belongs to the configured admin set.
func IsAdmin(adminIDs []string, userID string) bool {
	return contains(adminIDs, userID)
}
