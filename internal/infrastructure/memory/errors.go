package memory

import "errors"

var errDuplicateID = errors.New("duplicate key value violates unique constraint on users.id")
