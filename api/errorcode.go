package api

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1006: "invalid value of client version",
		1007: "API for this client version has been discontinued",

		1010: "invalid parameters",
		1011: "cannot parse request",
		1012: "invalid form",
		1013: "incorrect password",

		1100: "this account has been registered or has been taken",
		1101: "account not found",
		1102: "user profile not found",
		1105: "update score error",

		1200: "the description of the landfill is mandatory",
		1201: "location is not available",
		1202: "cannot save the dump report",
		1203: "cannot load dump reports",
		1204: "dump report not found",
		1205: "invalid dump report id",
		1206: "cannot clean the dump report",

		1300: "location permissions are not granted",
		1301: "failed to obtain a valid location",
		1302: "location provider error",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)
	errorInvalidClientVersion       = errorJSON(1006)
	errorUnsupportedClientVersion   = errorJSON(1007)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)
	errorInvalidForm        = errorJSON(1012)
	errorIncorrectPassword  = errorJSON(1013)

	errorAccountTaken    = errorJSON(1100)
	errorAccountNotFound = errorJSON(1101)
	errorProfileNotFound = errorJSON(1102)
	errorUpdateScore     = errorJSON(1105)

	errorDescriptionRequired = errorJSON(1200)
	errorLocationMissing     = errorJSON(1201)
	errorSaveReport          = errorJSON(1202)
	errorLoadReports         = errorJSON(1203)
	errorReportNotFound      = errorJSON(1204)
	errorInvalidReportID     = errorJSON(1205)
	errorCleanReport         = errorJSON(1206)

	errorLocationPermissionDenied = errorJSON(1300)
	errorNoLocationFix            = errorJSON(1301)
	errorLocationProvider         = errorJSON(1302)
)

type ErrorResponse struct {
	Code    int64             `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
