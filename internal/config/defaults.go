package config

const (
	defaultMessagesDB     = "~/.local/share/serenade/messages.db"
	defaultCandidatesDir  = "~/.local/share/serenade/candidates"
	defaultAssetsDir      = "~/.local/share/serenade/assets"
	defaultManifestDir    = "~/.local/share/serenade/manifests"
	defaultStagingDir     = "~/.local/share/serenade/staging"
	defaultLogDir         = "~/.local/share/serenade/logs"
	defaultPrefix         = "david"
	defaultProfile        = "standard"
	defaultMinScore       = 10.0
	defaultMinWords       = 8
	defaultTTSBaseURL     = "http://localhost:8000"
	defaultTTSTimeout     = 120
	defaultTTSModelID     = "eleven_monolingual_v1"
	defaultFFmpegBinary   = "ffmpeg"
	defaultBitrate        = "96k"
	defaultMinFreeGiB     = 1
	defaultSweepSchedule  = "0 3 * * *"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			MessagesDB:    defaultMessagesDB,
			CandidatesDir: defaultCandidatesDir,
			AssetsDir:     defaultAssetsDir,
			ManifestDir:   defaultManifestDir,
			StagingDir:    defaultStagingDir,
			LogDir:        defaultLogDir,
		},
		Curation: Curation{
			Prefix:   defaultPrefix,
			Profile:  defaultProfile,
			MinScore: defaultMinScore,
			MinWords: defaultMinWords,
		},
		TTS: TTS{
			BaseURL:        defaultTTSBaseURL,
			ModelID:        defaultTTSModelID,
			TimeoutSeconds: defaultTTSTimeout,
		},
		Render: Render{
			FFmpegBinary: defaultFFmpegBinary,
			Bitrate:      defaultBitrate,
			MinFreeGiB:   defaultMinFreeGiB,
		},
		Sweep: Sweep{
			Schedule: defaultSweepSchedule,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
