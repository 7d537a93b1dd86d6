package handler

type ContextKey string

var (
	RoleCtxKey   ContextKey = "role"
	SubCtxKey    ContextKey = "sub"
	MyProfileCtx ContextKey = "myProfile"
	TimesheetCtx ContextKey = "timesheet"
)
