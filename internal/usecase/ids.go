package usecase

import "github.com/google/uuid"

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func newID() string {
	return uuid.NewString()
}
