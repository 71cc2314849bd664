package service

import "context"

// Actor is who an admin mutation is attributed to in the activity log.
type Actor struct {
	ID   string
	Name string
}

// SystemActor is used for scheduled work.
var SystemActor = Actor{ID: "system", Name: "System"}

// DefaultAdmin is the single operator of the dashboard.
var DefaultAdmin = Actor{ID: "4", Name: "Admin User"}

type actorKey struct{}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, or DefaultAdmin.
func ActorFrom(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return DefaultAdmin
}
