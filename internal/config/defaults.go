package config

const (
	defaultDataDir            = "~/.local/share/jukebox"
	defaultLibraryDir         = "~/Movies"
	defaultTMDBBaseURL        = "https://api.themoviedb.org/3"
	defaultTMDBImageBaseURL   = "https://image.tmdb.org/t/p"
	defaultTMDBTimeoutSeconds = 10
	defaultScanWorkers        = 1
	defaultAPIBind            = "127.0.0.1:3000"
	defaultNtfyTimeoutSeconds = 10
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultConfigPath         = "~/.config/jukebox/config.toml"
	projectConfigName         = "jukebox.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LibraryDir: defaultLibraryDir,
		},
		TMDB: TMDB{
			BaseURL:        defaultTMDBBaseURL,
			ImageBaseURL:   defaultTMDBImageBaseURL,
			TimeoutSeconds: defaultTMDBTimeoutSeconds,
		},
		Scan: Scan{
			Workers: defaultScanWorkers,
		},
		API: API{
			Bind: defaultAPIBind,
		},
		Notifications: Notifications{
			RequestTimeoutSeconds: defaultNtfyTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
