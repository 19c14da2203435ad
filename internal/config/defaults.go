package config

const (
	defaultDataDir           = "./metadata"
	defaultGeneratedDir      = "./metadata/generated"
	defaultOutputDir         = "./output"
	defaultMetadataDir       = "./output/metadata"
	defaultLogDir            = "~/.local/share/mintprep/logs"
	defaultCollectionName    = "COLLECTION_NAME"
	defaultDescription       = "COLLECTION_DESCRIPTION"
	defaultCIDCommand        = "cid"
	defaultCIDVersion        = 0
	defaultCIDConcurrency    = 16
	defaultCIDCachePath      = "~/.cache/mintprep/cids.db"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultRoyaltyPercentage = 0
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:      defaultDataDir,
			GeneratedDir: defaultGeneratedDir,
			OutputDir:    defaultOutputDir,
			MetadataDir:  defaultMetadataDir,
			LogDir:       defaultLogDir,
		},
		Collection: Collection{
			Name:              defaultCollectionName,
			Description:       defaultDescription,
			RoyaltyPercentage: defaultRoyaltyPercentage,
		},
		Layers: Layers{
			Layer01: "Background",
			Layer02: "Body",
			Layer03: "Outfit",
			Layer04: "Accessory",
		},
		CID: CID{
			Command:     defaultCIDCommand,
			Version:     defaultCIDVersion,
			Concurrency: defaultCIDConcurrency,
		},
		CIDCache: CIDCache{
			Enabled: false,
			Path:    defaultCIDCachePath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
