package common

// Metadata keys for client-side persisted state.
const (
	MetaKeyAccessToken      = "access_token"
	MetaKeyUserEmail        = "user_email"
	MetaKeySidebarCollapsed = "sidebar_collapsed"
)

// LocalIDPrefix marks ids synthesized for records created while the server
// was unreachable. Server ids are UUIDs and never carry this prefix.
const LocalIDPrefix = "local-"
