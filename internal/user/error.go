package user

import "gadme-be/internal/apperr"

var ErrUserNotFound = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "User not found")
