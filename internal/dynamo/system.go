package dynamo

//go:generate mockgen -source system.go -destination system_mock.go -package dynamo

// System is the right-hand side F of dX/dt = F(X, t). Implementations must
// be pure: the same arguments always yield the same result, and x is never
// modified. The returned State must have the dimension of x.
type System interface {
	Derive(x State, t float64) State
}
