package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Age/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Age"
	AppID             = "com.github.tartampluch.go-age"
	BinaryName        = "go-age"
	KeyringService    = "com.github.tartampluch.go-age"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
	// ExitCodeInvalid signals rejected user input (validation failure).
	ExitCodeInvalid = 2
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// FilePermPublicR represents -rw-r--r--. Used for exported calendar files.
	FilePermPublicR fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands, Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	CmdCalc     = "calc <birthdate>"
	CmdContacts = "contacts"
	CmdCalendar = "calendar"
	CmdServe    = "serve"
	CmdVersion  = "version"

	CmdShortRoot     = "Compute an age breakdown from a birth date"
	CmdShortCalc     = "Show years, months, days and totals lived since a birth date"
	CmdShortContacts = "List ages and next birthdays of every contact in a vCard source"
	CmdShortCalendar = "Export an iCalendar birthday feed from a vCard source"
	CmdShortServe    = "Serve the age API, the birthday feed and metrics over HTTP"
	CmdShortVersion  = "Show application version and exit"

	FlagDebug    = "debug"
	FlagNoColor  = "no-color"
	FlagOn       = "on"
	FlagJSON     = "json"
	FlagFact     = "fact"
	FlagFile     = "file"
	FlagURL      = "url"
	FlagUser     = "user"
	FlagPassword = "password"
	FlagOut      = "out"
	FlagReminder = "reminder"
	FlagConfig   = "config"
	FlagPort     = "port"

	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescNoColor  = "Disable colored terminal output"
	FlagDescOn       = "Reference date (YYYY-MM-DD), defaults to today"
	FlagDescJSON     = "Print the result as JSON"
	FlagDescFact     = "Index of the fun fact to show (-1 picks one at random)"
	FlagDescFile     = "Path to a local .vcf file"
	FlagDescURL      = "CardDAV or WebDAV URL of a vCard export"
	FlagDescUser     = "HTTP Basic Auth username"
	FlagDescPassword = "HTTP Basic Auth password (falls back to the OS keyring)"
	FlagDescOut      = "Write the calendar to this file instead of stdout"
	FlagDescReminder = "ISO8601 alarm trigger, e.g. -P1D"
	FlagDescConfig   = "Path to a YAML settings file"
	FlagDescPort     = "Port to listen on"

	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// RandomFact selects a fun fact with the default picker.
	RandomFact = -1
)

// -----------------------------------------------------------------------------
// Age Calculation
// -----------------------------------------------------------------------------

const (
	// MaxAgeYears bounds how far in the past a birth date may lie.
	MaxAgeYears = 150

	HoursPerDay    = 24
	MinutesPerHour = 60
	SecondsPerMin  = 60
	MonthsPerYear  = 12

	// Fun fact approximations.
	DaysPerYearApprox = 365.25
	DaysPerWeek       = 7
	HeartbeatsPerSec  = 1.2
	SunrisesPerYear   = 365

	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
	UIDSalt         = "go-age-v1-"
)

// Validation kinds, stable identifiers used in logs, metrics and API responses.
const (
	KindMissingInput = "missing_input"
	KindFutureDate   = "future_date"
	KindTooOld       = "too_old"
)

// Fun fact identifiers.
const (
	FactFullMoons  = "full_moons"
	FactHeartbeats = "heartbeats"
	FactWeeks      = "weeks_of_life"
	FactSunrises   = "sunrises"
)

// -----------------------------------------------------------------------------
// Defaults & Sources
// -----------------------------------------------------------------------------

const (
	SourceModeNone       = ""
	SourceModeWeb        = "web"
	SourceModeLocal      = "local"
	DefaultPort          = "18080"
	DefaultSyncInterval  = 60 * time.Minute
	DisabledSyncInterval = 0
)

// -----------------------------------------------------------------------------
// Translation Keys (message catalogue)
// -----------------------------------------------------------------------------

const (
	TKeyBirthday      = "birthday_greeting"
	TKeyHeadline      = "age_headline" // Requires Years, Months, Days
	TKeyLblYears      = "lbl_years"
	TKeyLblMonths     = "lbl_months"
	TKeyLblDays       = "lbl_days"
	TKeyLblTotalDays  = "lbl_total_days"
	TKeyLblTotalHours = "lbl_total_hours"
	TKeyLblTotalMins  = "lbl_total_minutes"
	TKeyLblFunFact    = "lbl_fun_fact" // Requires Fact
	TKeyFactMoons     = "fact_full_moons"
	TKeyFactHeart     = "fact_heartbeats"
	TKeyFactWeeks     = "fact_weeks"
	TKeyFactSunrises  = "fact_sunrises"
	TKeyErrMissing    = "err_missing_input"
	TKeyErrFuture     = "err_future_date"
	TKeyErrTooOld     = "err_too_old"
	TKeyColName       = "col_name"
	TKeyColBirth      = "col_birth"
	TKeyColAge        = "col_age"
	TKeyColNext       = "col_next"
	TKeyEvtSummary    = "event_summary"       // Requires Name
	TKeyEvtSummaryAge = "event_summary_age"   // Requires Name, Age
	TKeyEvtBirth      = "event_summary_birth" // Requires Name
	TKeyAgeUnknown    = "age_unknown"
	TKeyContactAge    = "contact_age" // Requires Years, Months, Days

	DefaultLanguage = "en"
	LocalesDir      = "locales"
	LocalePrefix    = "active."
	LocaleSuffix    = ".json"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Age//Engine//EN"
	ICalCalName   = "Birthdays"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goage"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	DateFormatDisplay   = "2006-01-02"

	MinPort = 1
	MaxPort = 65535

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteAge      = "/api/v1/age"
	RouteCalendar = "/calendar.ics"
	RouteHealth   = "/healthz"
	RouteMetrics  = "/metrics"

	// RouteUnmatched labels requests no route matched, keeping metric cardinality bounded.
	RouteUnmatched = "unmatched"

	QueryBirthdate = "birthdate"
	QueryOn        = "on"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrValidation     = "invalid birth date"
	ErrMissingInput   = "birth date is missing"
	ErrFutureDate     = "birth date is after the reference date"
	ErrTooOld         = "birth date is more than 150 years before the reference date"
	ErrDateParse      = "unable to parse date"
	ErrRefParse       = "unable to parse reference date"
	ErrLocalPathEmpty = "configuration error: local path is empty"
	ErrWebURLEmpty    = "configuration error: web URL is empty"
	ErrFetcherMissing = "internal error: network fetcher is not initialized"
	ErrModeUnsupport  = "configuration error: unsupported source mode"
	ErrSourceMissing  = "configuration error: either a file or a URL is required"
	ErrServerStartup  = "server startup failed"
	ErrServerShutdown = "server shutdown failed"
	ErrPortRequired   = "server port is required"
	ErrPortNumber     = "server port must be a number"
	ErrPortRange      = "server port must be between 1 and 65535"
	ErrInterval       = "sync interval must not be negative"
	ErrInvalidURL     = "invalid URL structure"
	ErrProtocol       = "unsupported protocol scheme (http/https only)"
	ErrVCardParse     = "failed to read vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrLogFile        = "failed to open log file"
	ErrCacheDir       = "could not determine user cache dir"
	ErrCreateDir      = "could not create app cache dir"
	ErrAppFailed      = "application failed unexpectedly"
	ErrWriteResp      = "failed to write response body"
	ErrWriteFile      = "failed to write output file"
	ErrReminder       = "reminder must be an ISO8601 duration such as -P1D"
	ErrSettingsRead   = "failed to read settings file"
	ErrSettingsParse  = "failed to parse settings file"
	ErrSettingsValid  = "invalid settings"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrSyncFailed     = "contact synchronization failed"
	ErrMetricsInit    = "failed to register metrics"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPMsgOK           = "ok"
	HTTPCodeInternal    = "internal_error"
	HTTPCodeBadRequest  = "bad_request"
)

// -----------------------------------------------------------------------------
// Fallbacks & Log Messages
// -----------------------------------------------------------------------------

const (
	FallbackSummary      = "Birthday: %s"
	FallbackSummaryAge   = "Birthday: %s (%d)"
	FallbackSummaryBirth = "Birthday: %s (birth)"
	FallbackName         = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgAppStop       = "Application stopped gracefully"
	MsgAppStarting   = "Starting application"
	MsgCalculated    = "Age calculated"
	MsgRejected      = "Birth date rejected"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedDate   = "Skipping invalid date format"
	MsgSkippedAge    = "Skipping age breakdown for contact"
	MsgLoadStarted   = "Contact load started"
	MsgLoadSuccess   = "Contact load successful"
	MsgGenSuccess    = "Calendar generation successful"
	MsgBdayToday     = "Birthday found today"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgWorkerOff     = "No sync source configured, calendar worker disabled"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgCalendarOut   = "Calendar written"
	MsgSettingsLoad  = "Settings loaded"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyToday     = "birthdays_today"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyRef       = "reference_date"
	LogKeyKind      = "kind"
	LogKeyYears     = "years"
	LogKeyTotalDays = "total_days"
	LogKeyDuration  = "duration_ms"
	LogKeyEvents    = "events"
	LogKeyRoute     = "route"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompCLI       = "cli"
	CompEngine    = "engine"
	CompDirectory = "directory"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompWorker    = "worker"
	CompMain      = "main"
	CompI18n      = "i18n"
	CompSettings  = "settings"
)

// -----------------------------------------------------------------------------
// Metrics
// -----------------------------------------------------------------------------

const (
	MetricNamespace     = "goage"
	MetricCalculations  = "calculations_total"
	MetricRejections    = "validation_failures_total"
	MetricSyncs         = "calendar_syncs_total"
	MetricReqDuration   = "request_duration_seconds"
	MetricLabelKind     = "kind"
	MetricLabelResult   = "result"
	MetricLabelRoute    = "route"
	MetricResultOK      = "success"
	MetricResultFailure = "failure"
)
