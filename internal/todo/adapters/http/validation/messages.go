package validation

var messages = map[string]string{
	"name.required": "Name is required",
	"name.min":      "Name must be between 2 and 50 characters",
	"name.max":      "Name must be between 2 and 50 characters",

	"email.required": "Email is required",
	"email.email":    "Invalid email address",
	"email.max":      "Invalid email address",

	"password.required":   "Password is required",
	"password.min":        "Password must be 8 characters long",
	"password.max":        "Password cannot exceed 72 characters",
	"password.maxbytes":   "Password cannot exceed 72 bytes",
	"password.haslower":   "Password must contain at least one lowercase letter",
	"password.hasupper":   "Password must contain at least one uppercase letter",
	"password.hasdigit":   "Password must contain at least one number",
	"password.hasspecial": "Password must contain at least one special character",

	"title.required": "Title is required",
	"title.min":      "Title must be at least 2 characters long",
	"title.max":      "Title cannot exceed 100 characters",
	"title.safetext": "Title contains invalid characters",

	"description.required": "Description cannot be empty",
	"description.min":      "Description must be at least 5 characters long",
	"description.max":      "Description cannot exceed 2000 characters",

	"dueDate.required": "Due date cannot be empty",
	"dueDate.isodate":  "Due date must be a valid date",

	"tags.max":      "Tags cannot exceed 50 characters",
	"tags.safetext": "Tags contains invalid characters",

	"status.oneof": "Invalid status value",
}

func message(field, tag string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	return "Invalid value"
}
