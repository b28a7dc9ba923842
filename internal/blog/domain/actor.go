package domain

// Actor is the verified identity behind a request, extracted from a bearer
// token by the HTTP layer and passed explicitly into every operation that
// needs authorization. There is deliberately no ambient "current user".
type Actor struct {
	ID       int64
	Username string
	Email    string
}

// CanMutate is the ownership guard: an actor may mutate a resource iff
// they own it. There are no roles and no admin override.
func CanMutate(actorID, ownerID int64) bool {
	return actorID == ownerID
}
