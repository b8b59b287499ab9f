package domain

const (
	CollectionUser = "users"
)
const (
	CollectionActivityLog = "activitylogs"
)
