package utils

import (
	"context"

	"harvestharmony/globals"
)

func GetUserIDFromContext(ctx context.Context) string {
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromContext(ctx context.Context) string {
	role, ok := ctx.Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
