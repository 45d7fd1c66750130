package constants

const (
	ERROR_INPUT                  = "Invalid input"
	ERROR_INTERNAL_ERROR         = "Internal error"
	ERROR_CREATE                 = "Create failed"
	ERROR_EDIT                   = "Update failed"
	ERROR_DELETE                 = "Delete failed"
	ERROR_PARSE_DATA_TO_LOCALS   = "Cannot read validated input"
	DATA_INPUT_IS_NOT_NUMBER     = "Input is not a number"
	NOT_FOUND_RECORDS            = "Record not found"
	NOT_ADMIN                    = "Insufficient permission"
	MISSING_LOGIN_INPUT          = "Missing username or password"
	INVALID_USERNAME             = "Invalid username"
	INVALID_PASSWORD             = "Invalid password"
	INVALID_EMAIL                = "Invalid email"
	ACCOUNT_NOT_ACTIVE           = "Account is not active"
	ACCOUNT_NOT_PERMISSION       = "Account has no permission"
	CAN_NOT_HASH_PASSWORD        = "Cannot hash password"
	NEW_PASSWORD_NOT_SAME_REPEAT = "New password and repeat password do not match"
)

const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_MODERATOR = "MODERATOR"
	ROLE_JUDGE     = "JUDGE"
)

// Document collections.
const (
	COLLECTION_COMMENTS   = "submissionComments"
	COLLECTION_FILMS      = "featureFilms"
	COLLECTION_PARTNERS   = "partners"
	COLLECTION_ACTIVITIES = "activities"
	SUBCOLLECTION_GUESTS  = "guests"
)

const (
	FILM_STATUS_DRAFT     = "draft"
	FILM_STATUS_PUBLISHED = "published"
	FILM_STATUS_ARCHIVED  = "archived"
)
