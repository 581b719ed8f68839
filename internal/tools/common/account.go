package common

// DefaultAccount is the account used when a request names none.
const DefaultAccount = "default"

// GetAccountFromArgs extracts the account name from request arguments,
// falling back to DefaultAccount. Accounts let a single server hold
// credentials for several calendars (e.g. "work" and "personal").
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return DefaultAccount
}
