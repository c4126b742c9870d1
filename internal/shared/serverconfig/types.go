package serverconfig

type Config struct {
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
	HTTPServer  HTTPServerConfig  `yaml:"httpserver" mapstructure:"httpserver"`
	MySQL       MySQLConfig       `yaml:"mysql" mapstructure:"mysql"`
	MongoDB     MongoDBConfig     `yaml:"mongodb" mapstructure:"mongodb"`
	Game        GameConfig        `yaml:"game" mapstructure:"game"`
	Persistence PersistenceConfig `yaml:"persistence" mapstructure:"persistence"`
	JWTSecret   string            `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
	MaxPoolSize     uint64 `yaml:"max_pool_size" mapstructure:"max_pool_size"`
}

type HTTPServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

type LogConfig struct {
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"` // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"` // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Level      string `yaml:"level" mapstructure:"level"` // debug/info/warn/error...
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// GameConfig 对局相关的运行参数。
type GameConfig struct {
	MapDir          string `yaml:"map_dir" mapstructure:"map_dir"`
	DefaultMap      string `yaml:"default_map" mapstructure:"default_map"`
	AskTimeoutMs    int    `yaml:"ask_timeout_ms" mapstructure:"ask_timeout_ms"`
	FlushIntervalMs int    `yaml:"flush_interval_ms" mapstructure:"flush_interval_ms"`
	TokenTTLHours   int    `yaml:"token_ttl_hours" mapstructure:"token_ttl_hours"`
	IdleTimeoutS    int    `yaml:"idle_timeout_s" mapstructure:"idle_timeout_s"` // 0 表示不回收
	NodeID          int64  `yaml:"node_id" mapstructure:"node_id"`               // 对局 id 的雪花节点号
}

// PersistenceConfig.Driver: memory | mongodb
type PersistenceConfig struct {
	Driver       string `yaml:"driver" mapstructure:"driver"`
	RecordResult bool   `yaml:"record_result" mapstructure:"record_result"`
}
