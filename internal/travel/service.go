package travel

import "context"

// Fields is the loosely shaped payload sent on create/update. The console's
// form engine produces it from typed field values; the booking platform
// validates it authoritatively on its side.
type Fields map[string]any

// Record is anything the booking platform exposes with a numeric identifier.
type Record interface {
	RecordID() int64
}

// Collection is the CRUD contract every console screen builds on. One
// implementation exists per resource path on the remote platform; the form
// and list engines are generic over it and assume nothing beyond RecordID.
type Collection[T Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, fields Fields) (T, error)
	Update(ctx context.Context, id int64, fields Fields) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Authenticator is the slice of the platform API used by the session store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (AuthPayload, error)
	Register(ctx context.Context, req RegisterRequest) (AuthPayload, error)
}
