package domain

type CtxKey string

const (
	KeyActorID    CtxKey = "ActorID"
	KeyActorRoles CtxKey = "ActorRoles"
)
