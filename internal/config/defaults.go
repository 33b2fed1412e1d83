package config

const (
	defaultCatalogDir      = "~/.local/share/shoebox"
	defaultLogDir          = "~/.local/share/shoebox/logs"
	defaultFlushInterval   = 25
	defaultMinFreeGiB      = 1
	defaultExiftoolBinary  = "exiftool"
	defaultExiftoolTimeout = 30
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

func defaultImageExtensions() []string {
	return []string{"jpg", "jpeg", "png", "gif", "tif", "tiff", "heic", "heif", "dng", "cr2", "cr3", "nef", "arw", "orf", "raf", "rw2"}
}

func defaultVideoExtensions() []string {
	return []string{"mp4", "mov", "avi", "mkv", "m4v", "mts", "m2ts", "3gp", "mpg", "mpeg", "webm"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CatalogDir: defaultCatalogDir,
			LogDir:     defaultLogDir,
		},
		Ingest: Ingest{
			ImageExtensions: defaultImageExtensions(),
			VideoExtensions: defaultVideoExtensions(),
			FlushInterval:   defaultFlushInterval,
			MinFreeGiB:      defaultMinFreeGiB,
		},
		ExifTool: ExifTool{
			Binary:         defaultExiftoolBinary,
			TimeoutSeconds: defaultExiftoolTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
