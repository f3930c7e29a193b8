package config

// Source names
const (
	SourceAPI    = "api"
	SourceGTFSRT = "gtfsrt"
)

// APIConfig contains MBTA V3 API settings
type APIConfig struct {
	BaseURL   string `yaml:"baseURL" validate:"required,url"`
	Key       string `yaml:"-" validate:"required"`
	TimeoutMS int    `yaml:"timeoutMS" validate:"gte=0"`
}

// Pair is one (route, stop) board
type Pair struct {
	Route string `yaml:"route" validate:"required"`
	Stop  string `yaml:"stop" validate:"required"`
}

// PollConfig controls the polling loop
type PollConfig struct {
	IntervalMS int `yaml:"intervalMS" validate:"min=1000"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	StaticURL string `yaml:"staticURL" validate:"omitempty"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	TripUpdatesURL      string `yaml:"tripUpdatesURL" validate:"omitempty"`
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty"`
}

// DisplayConfig contains settings for the bitmap and panel sinks
type DisplayConfig struct {
	PreviewPath string `yaml:"previewPath" validate:"required"`
}

// RedisConfig enables the redis sink when Addr is set
type RedisConfig struct {
	Addr     string `yaml:"addr" validate:"omitempty,hostname_port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Channel  string `yaml:"channel" validate:"required_with=Addr"`
}

// AMQPConfig enables the amqp sink when URL is set
type AMQPConfig struct {
	URL   string `yaml:"url" validate:"omitempty,url"`
	Queue string `yaml:"queue" validate:"required_with=URL"`
	TTLMS int    `yaml:"ttlMS" validate:"gte=0"`
}

// LoggingConfig contains logging switches
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	API     APIConfig     `yaml:"api"`
	Boards  []Pair        `yaml:"boards" validate:"required,min=1,dive"`
	Poll    PollConfig    `yaml:"poll"`
	Source  string        `yaml:"source" validate:"oneof=api gtfsrt"`
	GTFS    GTFSConfig    `yaml:"gtfs"`
	GTFSRT  GTFSRTConfig  `yaml:"gtfsrt"`
	Display DisplayConfig `yaml:"display"`
	Redis   RedisConfig   `yaml:"redis"`
	AMQP    AMQPConfig    `yaml:"amqp"`
	Logging LoggingConfig `yaml:"logging"`
}
