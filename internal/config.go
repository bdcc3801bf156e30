package internal

import "time"

type Config struct {
	BufferSize           int           `env:"BUFFER_SIZE,required=true"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,required=true"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,required=true"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,required=true"`

	PublishTimeout     time.Duration `env:"PUBLISH_TIMEOUT,required=true"`
	ConfirmDeadline    time.Duration `env:"CONFIRM_DEADLINE,required=true"`
	MaxPublishAttempts uint64        `env:"MAX_PUBLISH_ATTEMPTS,required=true"`
	BackoffInitial     time.Duration `env:"BACKOFF_INITIAL,required=true"`
	BackoffMax         time.Duration `env:"BACKOFF_MAX,required=true"`
	WatchdogInterval   time.Duration `env:"WATCHDOG_INTERVAL,required=true"`
	WatchdogDeadline   time.Duration `env:"WATCHDOG_DEADLINE,required=true"`
	RequestTokenTTL    time.Duration `env:"REQUEST_TOKEN_TTL,default=24h"`

	KafkaBrokers []string `env:"KAFKA_BROKERS"`
	KafkaTopic   string   `env:"KAFKA_TOPIC,default=chat.messages"`
	KafkaGroupID string   `env:"KAFKA_GROUP_ID,default=chat-relay"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`
	Host           string `env:"HOST,default=localhost"`
	Port           int    `env:"PORT,default=8080"`
}
