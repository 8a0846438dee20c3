package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ActorIDKey contextKey = "actor_id"
	RoleKey    contextKey = "role"
)

// Actor roles, matching the session table.
const (
	RoleMember = "member"
	RoleOwner  = "owner"
)

func SetActorContext(ctx context.Context, actorID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, ActorIDKey, actorID.String())
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actorVal := ctx.Value(ActorIDKey)
	if actorVal == nil {
		return uuid.Nil, false
	}

	actorStr, ok := actorVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	actorID, err := uuid.Parse(actorStr)
	if err != nil {
		return uuid.Nil, false
	}

	return actorID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(string)
	return role, ok
}
