package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	appError "github.com/safatanc/vidtube/internal/app/errors"
	"gorm.io/gorm"
)

func parseID(raw, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, appError.NewBadRequestError("Invalid " + name + " id")
	}
	return id, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern wraps a user term for a substring LIKE match with the
// backslash escape character.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// requireOwner rejects an actor acting on someone else's resource.
func requireOwner(ownerID, actorID uuid.UUID, message string) error {
	if ownerID != actorID {
		return appError.NewForbiddenError(message)
	}
	return nil
}

// exists reports whether a row of model with the given id is present.
func exists(db *gorm.DB, model any, id uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
