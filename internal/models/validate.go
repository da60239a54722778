package models

import "usertags/backend/internal/validation"

var validate = validation.New()
