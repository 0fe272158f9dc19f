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
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDate         = "date"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	FlagDescDate     = "Compute the age for a D/M/YYYY birth date and print it without the UI"
	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
	MsgCLIUsageDate  = "expected D/M/YYYY, got %q"
	FormatCLISlot    = "%-20s %s\n"
	FormatCLIError   = "%s: %s\n"
	CLIDateSep       = "/"
	CLIDateParts     = 3

	// Headless output labels
	CLILabelYears      = "Years"
	CLILabelMonths     = "Months"
	CLILabelDays       = "Days"
	CLILabelTotalDays  = "Total days"
	CLILabelHours      = "Total hours"
	CLILabelMinutes    = "Total minutes"
	CLILabelSeconds    = "Total seconds"
	CLILabelHeartbeats = "Heartbeats"
	CLILabelBreaths    = "Breaths"
	CLILabelNext       = "Next birthday in"
	CLILabelMilestones = "Milestones"
	CLIMilestoneSep    = ", "
)

// -----------------------------------------------------------------------------
// Calendar Rules & Plausible Range
// -----------------------------------------------------------------------------

const (
	MinDay   = 1
	MaxDay   = 31
	MinMonth = 1
	MaxMonth = 12
	MinYear  = 1900

	// MonthFebruary is the only month whose length depends on the year.
	MonthFebruary = 2

	MonthsPerYear = 12
)

// -----------------------------------------------------------------------------
// Duration Multipliers & Biological Rates
// -----------------------------------------------------------------------------

const (
	HoursPerDay      = 24
	MinutesPerHour   = 60
	SecondsPerMinute = 60
	Day              = 24 * time.Hour

	HeartbeatsPerMinute = 70
	BreathsPerMinute    = 16
)

// -----------------------------------------------------------------------------
// Milestones
// -----------------------------------------------------------------------------

// Milestone labels. The emoji prefix is part of the label.
const (
	MilestoneAdult      = "🎓 Adult"
	MilestoneDrinking   = "🍷 Legal Drinking Age"
	MilestoneThirty     = "🎯 Thirty Club"
	MilestoneForty      = "💪 Life Begins at 40"
	MilestoneGolden     = "🌟 Golden Years"
	MilestoneRetirement = "🏖️ Retirement Age"
	Milestone1KDays     = "📅 1K Days"
	Milestone5KDays     = "🎊 5K Days"
	Milestone10KDays    = "💎 10K Days"
	Milestone20KDays    = "🚀 20K Days"
	MilestoneGrowing    = "🌱 Young & Growing"
)

// -----------------------------------------------------------------------------
// Reveal Animation
// -----------------------------------------------------------------------------

const (
	CountUpDuration   = 1500 * time.Millisecond
	CardRevealStep    = 200 * time.Millisecond
	ResultRevealDelay = 100 * time.Millisecond
	EaseExponent      = 4
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth     = 520
	MainWindowHeight    = 640
	SettingsWindowWidth = 600

	// Preference Keys
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefAnimate    = "animate_results"
	PrefLastRun    = "last_run_version"

	// Output slot placeholder before the first computation.
	SlotPlaceholder = "-"
	EntryDayHint    = "DD"
	EntryMonthHint  = "MM"
	EntryYearHint   = "YYYY"

	// Typed input limits for the numeric fields.
	DayDigits   = 2
	MonthDigits = 2
	YearDigits  = 4
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Contacts Window Constants
// -----------------------------------------------------------------------------

const (
	ContactsWinWidth  = 550
	ContactsWinHeight = 400

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColCount  = 2

	// Table Layout
	ColWidthName = 300
	ColWidthDate = 180

	DateFormatDisplay  = "2006-01-02"
	DateFormatNoYear   = "--01-02"
	TablePlaceholder   = "Cell Content"
	HeaderPlaceholder  = "Header"
	LogMsgOpenWin      = "Opening Contacts Window"
	LogMsgSorted       = "Contacts sorted"
	LogMsgContactPick  = "Contact selected"
	LogMsgContactsLoad = "Contacts loaded"
	LogMsgFetchStatus  = "Address book returned error status"
	LogMsgFetchStart   = "Address book download started"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle     = "win_title"
	TKeyWinSettings  = "win_settings_title"
	TKeyWinContacts  = "win_contacts_title"
	TKeyLblDay       = "lbl_day"
	TKeyLblMonth     = "lbl_month"
	TKeyLblYear      = "lbl_year"
	TKeyBtnCalculate = "btn_calculate"
	TKeyBtnContacts  = "btn_contacts"
	TKeyBtnExport    = "btn_export"
	TKeyBtnSettings  = "btn_settings"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyBtnBrowse    = "btn_browse"
	TKeyBtnReload    = "btn_reload"
	TKeyModeCardDAV  = "mode_carddav"
	TKeyModeLocal    = "mode_local"
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblAnimate   = "lbl_animate"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyLblGeneral   = "lbl_general"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_carddav_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblSource    = "lbl_source"
	TKeyLblFooter    = "lbl_footer"
	TKeyEvtSummary   = "event_summary" // Requires Age

	// Result cards
	TKeyCardAge        = "card_age"
	TKeyCardDuration   = "card_duration"
	TKeyCardLife       = "card_life"
	TKeyCardNext       = "card_next_birthday"
	TKeyCardMilestones = "card_milestones"
	TKeySlotYears      = "slot_years"
	TKeySlotMonths     = "slot_months"
	TKeySlotDays       = "slot_days"
	TKeySlotTotalDays  = "slot_total_days"
	TKeySlotHours      = "slot_total_hours"
	TKeySlotMinutes    = "slot_total_minutes"
	TKeySlotSeconds    = "slot_total_seconds"
	TKeySlotHeartbeats = "slot_heartbeats"
	TKeySlotBreaths    = "slot_breaths"
	TKeySlotNext       = "slot_days_to_birthday"

	// Column Headers
	TKeyColName    = "col_name"
	TKeyColDate    = "col_date"
	TKeyFormatDate = "format_date_short"

	// Field Errors
	TKeyErrDay       = "err_day"          // Generic day message
	TKeyErrDayBound  = "err_day_bound"    // Requires Bound
	TKeyErrMonth     = "err_month"        // Generic month message
	TKeyErrYearBound = "err_year_bound"   // Requires Min, Bound
	TKeyErrDate      = "err_invalid_date" // Date does not exist
	TKeyErrFuture    = "err_future_date"  // Birth date after today

	// Validation Errors (Settings)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"

	// Milestones
	TKeyMsAdult      = "ms_adult"
	TKeyMsDrinking   = "ms_drinking"
	TKeyMsThirty     = "ms_thirty"
	TKeyMsForty      = "ms_forty"
	TKeyMsGolden     = "ms_golden"
	TKeyMsRetirement = "ms_retirement"
	TKeyMs1KDays     = "ms_1k_days"
	TKeyMs5KDays     = "ms_5k_days"
	TKeyMs10KDays    = "ms_10k_days"
	TKeyMs20KDays    = "ms_20k_days"
	TKeyMsGrowing    = "ms_growing"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb   = "web"
	SourceModeLocal = "local"
	DefaultPort     = "18081"
	DefaultLanguage = "en"
	DefaultLeapYear = 2000 // Leap year fallback for dates like --02-29
	DefaultAnimate  = true
	UIDSalt         = "go-age-v1-" // Salt for deterministic UID generation

	// ExportYears is the number of consecutive anniversaries exported, starting this year.
	ExportYears = 2
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Age//Engine//EN"
	ICalCalName   = "Next Birthday"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goage"
	ICalTrigger   = "-P1D"

	// iCal/vCard Fields
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

	DefaultICalRefresh = 24 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts used for parsing vCard BDAY fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%04d-%02d-%02d|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtICS   = ".ics"

	ExportFileName = "next-birthday.ics"
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
	RouteRoot           = "/"
	PatternRoot         = "/{$}"
	RouteFeed           = "/" + ExportFileName
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType  = "Content-Type"
	HeaderCacheControl = "Cache-Control"
	HeaderETag         = "ETag"
	HeaderLastModified = "Last-Modified"
	HeaderRetryAfter   = "Retry-After"
	HeaderAllow        = "Allow"
	HeaderXContentType = "X-Content-Type-Options"
	HeaderUserAgent    = "User-Agent"
	HeaderIfNoneMatch  = "If-None-Match"
	HeaderIfModSince   = "If-Modified-Since"
	HeaderDisposition  = "Content-Disposition"
	HeaderAccept       = "Accept"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeAcceptVCard     = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`

	// FormatDisposition expects the download file name.
	FormatDisposition = `inline; filename="%s"`
)

// -----------------------------------------------------------------------------
// Field Messages (Defaults, English)
// -----------------------------------------------------------------------------

const (
	MsgDayInvalid   = "Must be a valid day"
	MsgMonthInvalid = "Must be a valid month"
	MsgInvalidDate  = "Invalid date"
	MsgFutureDate   = "Must be in the past"
	FormatDayBound  = "Must be between 1-%d"
	FormatYearBound = "Must be between %d-%d"
	FallbackSummary = "Birthday (%d)"
	FallbackName    = "Unknown"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrNonNumeric      = "value is missing or not a number"
	ErrOutOfRange      = "value is out of range"
	ErrDayForMonth     = "day exceeds the length of the month"
	ErrDateNotReal     = "date does not exist in the calendar"
	ErrDateFuture      = "birth date is after the reference date"
	ErrFormInvalid     = "form has invalid fields"
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrWriteResp       = "failed to write response body"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocNotInit      = "localizer not initialized"
	ErrExportWrite     = "failed to write calendar export"
	ErrContactsLoad    = "failed to load contacts"
	ErrKeyringSave     = "failed to save credentials to keyring"
	ErrNoResultYet     = "nothing to export yet"
	ErrCLIDate         = "invalid -date value"
	ErrFetchRequest    = "failed to create request"
	ErrFetchNetwork    = "network error during fetch"
	ErrFetchStatus     = "address book returned unexpected status"
	ErrFetchTooLarge   = "address book exceeds size limit"
	ErrCLIComputation  = "age computation failed"
	HTTPMsgInitialized = "Calendar not computed yet, please try again shortly."
	HTTPMsgMethodNotAl = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	TitleStartupError = "Startup Error"
	TitleImportError  = "Import Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSkippedDate     = "Skipping invalid date format"
	MsgContactsRead    = "Contacts read"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP server listening"
	MsgServerStop      = "Shutting down HTTP server..."
	MsgCacheUpdated    = "Calendar cache updated"
	MsgCacheCleared    = "Calendar cache cleared"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgValidated       = "Form validated"
	MsgComputed        = "Age computed"
	MsgComputeRejected = "Age computation rejected"
	MsgExported        = "Calendar exported"
	MsgSettingsSaved   = "Saving preferences"
	MsgSettingsOpen    = "Opening settings window"
	MsgSettingsFocus   = "Settings window already open, requesting focus"
	MsgVersionChange   = "Application version changed since last run"

	PlaceholderURL = "https://..."
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
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyField     = "field"
	LogKeyValid     = "valid"
	LogKeyYears     = "years"
	LogKeyTotalDays = "total_days"
	LogKeyNextDays  = "days_to_birthday"

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
	CompUI      = "ui"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompMain    = "main"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2
	LayoutColumnsTriple = 3
)
