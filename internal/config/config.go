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
	CLIName           = "go-age-cli"
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
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"

	// go-age-cli
	FlagStart          = "start"
	FlagReference      = "reference"
	FlagPreset         = "preset"
	FlagRefPreset      = "reference-preset"
	FlagJSON           = "json"
	FlagDescStart      = "Start instant (YYYY-MM-DD or YYYY-MM-DDTHH:MM:SS)"
	FlagDescReference  = "Reference instant (defaults to now)"
	FlagDescPreset     = "Time-of-day preset applied to the start date (custom, morning, noon, evening, night)"
	FlagDescRefPreset  = "Time-of-day preset applied to --reference (ignored when it is omitted)"
	FlagDescJSON       = "Print the result as JSON"
	CmdCalcUse         = "calc"
	CmdCalcShort       = "Break down the time elapsed between two instants"
	CmdVersionUse      = "version"
	CmdVersionShort    = "Print version information"
	CmdRootShort       = "Calendar-aware age calculator"
	InstantFlagType    = "instant"
	CLIIndentJSON      = "  "
	FormatBreakdown    = "%dy %dm %dd %dh %dmin %ds"
	CLIFormatStat      = "%-16s %s\n"

	// Row labels of the text output.
	CLILabelMonths     = "Total months"
	CLILabelWeeks      = "Total weeks"
	CLILabelDays       = "Total days"
	CLILabelHours      = "Total hours"
	CLILabelMinutes    = "Total minutes"
	CLILabelSeconds    = "Total seconds"
	CLILabelHeartbeats = "Heartbeats"
	CLILabelBreaths    = "Breaths"
	CLILabelLunar      = "Lunar cycles"
	CLILabelSeasons    = "Seasons"
	CLILabelLife       = "Life (80 years)"
	CLIFormatPercent   = "%.1f%%"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth   = 600
	CalculatorWinWidth    = 640
	CalculatorWinHeight   = 720
	LifeGaugeMax          = 100.0
	LayoutColumnsDouble   = 2
	LayoutColumnsTriple   = 3
	CalculatorPlaceholder = "YYYY-MM-DD"

	// Preference Keys
	PrefCardDAVURL  = "carddav_url"
	PrefUsername    = "username"
	PrefLanguage    = "language"
	PrefInterval    = "refresh_interval_min"
	PrefServerPort  = "server_port"
	PrefSourceMode  = "source_mode"
	PrefLocalPath   = "local_path"
	PrefBirthDate   = "birth_date"
	PrefBirthPreset = "birth_preset"
	PrefRefPreset   = "reference_preset"
	PrefLastRun     = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// UI Contacts Window Constants
// -----------------------------------------------------------------------------

const (
	ContactsWinWidth  = 620
	ContactsWinHeight = 400

	// Table Column IDs
	ColIDName = 0
	ColIDDate = 1
	ColIDAge  = 2

	ColWidthName = 220
	ColWidthDate = 120
	ColWidthAge  = 260

	DateFormatDisplay = "2006-01-02"
	TablePlaceholder  = "Cell Content"
	AgeUnknown        = "-"
	LogMsgOpenWin     = "Opening Contacts Window"
	LogMsgSorted      = "Contacts sorted"

	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle       = "win_title"
	TKeyWinContacts    = "win_contacts_title"
	TKeyWinCalculator  = "win_calculator_title"
	TKeyMenuCalculator = "menu_calculator"
	TKeyMenuRefresh    = "menu_refresh"
	TKeyMenuSettings   = "menu_settings"
	TKeyTrayStatus     = "tray_status" // Requires Count
	TKeyNotifStart     = "notif_sync_start"
	TKeyNotifSuccess   = "notif_sync_success"
	TKeyNotifError     = "notif_err_sync"
	TKeyModeCardDAV    = "mode_carddav"
	TKeyModeLocal      = "mode_local"
	TKeyLblLanguage    = "lbl_language"
	TKeyHelpLanguage   = "help_language"
	TKeyLblMinutes     = "lbl_minutes_suffix"
	TKeyLblRefresh     = "lbl_refresh_interval"
	TKeyHelpInterval   = "help_interval"
	TKeyLblPort        = "lbl_server_port"
	TKeyHelpPort       = "help_port"
	TKeyLblGeneral     = "lbl_general"
	TKeyBtnSave        = "btn_save"
	TKeyBtnCancel      = "btn_cancel"
	TKeyLblFooter      = "lbl_footer"
	TKeyBtnBrowse      = "btn_browse"
	TKeyLblURL         = "lbl_url"
	TKeyHelpURL        = "help_carddav_url"
	TKeyLblUser        = "lbl_user"
	TKeyLblPass        = "lbl_pass"
	TKeyLblSource      = "lbl_source"
	TKeyEvtBirthday    = "event_birthday"         // Requires Name, Age
	TKeyEvtBirthdayNY  = "event_birthday_no_year" // Requires Name
	TKeyEvtDays        = "event_days"             // Requires Name, Days
	TKeyEvtSeconds     = "event_billion_secs"     // Requires Name

	// Calculator
	TKeyLblBirthInfo   = "lbl_birth_info"
	TKeyLblBirthDate   = "lbl_birth_date"
	TKeyLblPreset      = "lbl_time_preset"
	TKeyLblRefPreset   = "lbl_ref_time_preset"
	TKeyLblBirthSel    = "lbl_birth_selected"  // Requires When
	TKeyLblRefSel      = "lbl_ref_selected"    // Requires When
	TKeyLblNowSel      = "lbl_now_selected"    // Requires When
	TKeyFormatLong     = "format_instant_long" // Go layout for the previews
	TKeyDurYears       = "dur_years"           // Requires Count
	TKeyDurMonths      = "dur_months"          // Requires Count
	TKeyDurDays        = "dur_days"            // Requires Count
	TKeyDurHours       = "dur_hours"           // Requires Count
	TKeyDurMinutes     = "dur_minutes"         // Requires Count
	TKeyDurSeconds     = "dur_seconds"         // Requires Count
	TKeyLblHour        = "lbl_hour"
	TKeyLblMinute      = "lbl_minute"
	TKeyLblSecond      = "lbl_second"
	TKeyLblReference   = "lbl_reference"
	TKeyLblUseNow      = "lbl_use_now"
	TKeyLblCalcDate    = "lbl_calc_date"
	TKeyBtnCalculate   = "btn_calculate"
	TKeyLblResult      = "lbl_result"     // Requires Years..Seconds
	TKeyLblStatistics  = "lbl_statistics"
	TKeyLblBreakdown   = "lbl_breakdown"
	TKeyLblLifeJourney = "lbl_life_journey"
	TKeyLblFunFacts    = "lbl_fun_facts"
	TKeyFactOrbits     = "fact_orbits"  // Requires Count
	TKeyFactMoon       = "fact_moon"    // Requires Count
	TKeyFactSeasons    = "fact_seasons" // Requires Count
	TKeyErrOrdering    = "err_ordering"
	TKeyErrDate        = "err_date"
	TKeyPresetCustom   = "preset_custom"
	TKeyPresetMorning  = "preset_morning"
	TKeyPresetNoon     = "preset_noon"
	TKeyPresetEvening  = "preset_evening"
	TKeyPresetNight    = "preset_night"

	// Statistic labels
	TKeyStatYears     = "stat_years"
	TKeyStatMonths    = "stat_months"
	TKeyStatDays      = "stat_days"
	TKeyStatWeeks     = "stat_weeks"
	TKeyStatHours     = "stat_hours"
	TKeyStatMinutes   = "stat_minutes"
	TKeyStatSeconds   = "stat_seconds"
	TKeyStatHeartbeat = "stat_heartbeats"
	TKeyStatBreaths   = "stat_breaths"

	// Breakdown components
	TKeyUnitYears   = "unit_years"
	TKeyUnitMonths  = "unit_months"
	TKeyUnitDays    = "unit_days"
	TKeyUnitHours   = "unit_hours"
	TKeyUnitMinutes = "unit_minutes"
	TKeyUnitSeconds = "unit_seconds"

	// Column Headers & Formats
	TKeyColName    = "col_name"
	TKeyColDate    = "col_date"
	TKeyColAge     = "col_age"
	TKeyFormatDate = "format_date_short"
	TKeyFormatAge  = "format_age_short" // Requires Years, Months, Days

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18081"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	DefaultLeapYear   = 2000 // Leap year fallback for dates like --02-29
	DefaultBirthDate  = "2000-01-01"
	UIDSalt           = "go-age-v1-" // Salt for deterministic UID generation
	DisabledInterval  = 0
)

// Supported input range for instants. The decomposer itself does not enforce it.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Time-of-day presets offered next to the birth date.
const (
	PresetCustom  = "custom"
	PresetMorning = "morning"
	PresetNoon    = "noon"
	PresetEvening = "evening"
	PresetNight   = "night"

	PresetMorningHour = 8
	PresetNoonHour    = 12
	PresetEveningHour = 18
	PresetNightHour   = 22
)

// PresetNames lists the presets in display order.
var PresetNames = []string{PresetCustom, PresetMorning, PresetNoon, PresetEvening, PresetNight}

// -----------------------------------------------------------------------------
// Statistics Constants
// -----------------------------------------------------------------------------

// The approximations below are illustrative and kept as-is.
const (
	SecondsPerMinute = 60
	SecondsPerHour   = 3600
	SecondsPerDay    = 86400
	DaysPerWeek      = 7
	MonthsPerYear    = 12
	MonthsPerSeason  = 3
	SeasonsPerYear   = 4

	HeartbeatsPerMinute = 70
	BreathsPerMinute    = 12
	LunarCycleDays      = 29.53
	LifespanYears       = 80
	PercentMax          = 100.0

	// Display-only averages for the proportional breakdown.
	AvgDaysPerYear  = 365.25
	AvgDaysPerMonth = 30.44
)

// Milestones published in the calendar feed.
const (
	MilestoneDayStep      = 1000
	MilestoneBillionSecs  = 1_000_000_000
	MilestoneKindBirthday = "birthday"
	MilestoneKindDays     = "days"
	MilestoneKindSeconds  = "seconds"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Age//Engine//EN"
	ICalCalName = "Age Milestones"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "goage"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropCategories = "CATEGORIES"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	VCardBDAY = "BDAY"
	VCardFN   = "FN"
	VCardN    = "N"

	DefaultICalRefresh = 1 * time.Hour
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

	// Instant layouts accepted by the CLI, the API and the calculator.
	InstantFormat     = "2006-01-02T15:04:05"
	InstantFormatDate = "2006-01-02"

	// InstantFormatLong is the fallback layout of the calculator previews.
	InstantFormatLong = "Monday, January 02, 2006 at 03:04:05 PM"

	MinPort = 1
	MaxPort = 65535

	// Time-of-day field bounds, inclusive.
	MaxHour         = 23
	MaxMinuteSecond = 59

	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%s-%d@%s"

	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
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
	RouteAge            = "/api/age"
	QueryStart          = "start"
	QueryReference      = "reference"
	QueryPreset         = "preset"
	QueryRefPreset      = "reference_preset"
	AddrSeparator       = ":"
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
	MimeJSON            = "application/json"
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
	ErrOrdering         = "start instant is after reference instant"
	ErrInstantInvalid   = "invalid instant"
	ErrInstantRange     = "year out of supported range"
	ErrInstantParse     = "unable to parse instant"
	ErrPresetUnknown    = "unknown time preset"
	ErrStartRequired    = "start instant is required"
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrInvalidURL       = "invalid URL structure"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to parse vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "unable to parse date"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackBirthday    = "%s turns %d"
	FallbackBirthdayNY  = "Birthday: %s"
	FallbackDays        = "%s: %d days old"
	FallbackSeconds     = "%s: one billion seconds old"
	FallbackTrayError   = "Go Age: Sync Error"
	FallbackTrayDefault = "Go Age (%d contacts)"
	FallbackTrayLabel   = "Go Age"
	FallbackName        = "Unknown"
	FallbackAgeShort    = "%dy %dm %dd"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleSyncError    = "Sync Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgSyncStarted    = "Synchronization started..."
	MsgSyncFailed     = "Synchronization failed. Check logs."
	MsgSyncReq        = "Sync requested"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgWorkerIdle     = "Auto-refresh disabled, worker idle"
	MsgUpdateSync     = "Updating sync interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid date format"
	MsgSkippedFuture  = "Skipping contact born after reference"
	MsgGenSuccess     = "Milestone calendar generated"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Calendar cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgCalculated     = "Age calculated"
	MsgCalcRejected   = "Age calculation rejected"
	MsgAPIRequest     = "Age API request"
	MsgCalcWindowOpen = "Opening calculator window"
	MsgSettingsOpen   = "Opening settings window"
	MsgSettingsSaved  = "Preferences saved"
	MsgRefreshOff     = "Auto-refresh disabled via settings"
	MsgKeyringSave    = "Failed to save credentials to keyring"

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
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyFound     = "birthdays_found"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDOB       = "date_of_birth"
	LogKeyDuration  = "duration_ms"
	LogKeyStart     = "start"
	LogKeyReference = "reference"
	LogKeyYears     = "years"
	LogKeyTotalSecs = "total_seconds"
	LogKeyPreset    = "preset"

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
	CompUICalc  = "ui_calculator"
	CompUISet   = "ui_settings"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompWorker  = "worker"
	CompMain    = "main"
	CompCLI     = "cli"
	CompI18n    = "i18n"
)
