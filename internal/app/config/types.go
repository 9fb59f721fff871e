package config

type (
	DriverConfig struct {
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		Encoding            string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Enabled  bool
		Port     string
		Host     string
		Username string
		Password string
	}
)

type InternalConfig struct {
	App        App
	EMRAPI     AppEMRAPI
	Workspace  AppWorkspace
	Submission AppSubmission
	RabbitMQ   AppRabbitMQ
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	CORSAllowedOrigins         string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
	WriteRateLimitPerMinute    int
	WriteRateLimitBlockSeconds int
}

// AppEMRAPI points at the record backend serving /api/pasien/{nik}.
type AppEMRAPI struct {
	BaseUrl              string
	TimeoutInSeconds     int
	MaxRequestsPerSecond int
}

type AppWorkspace struct {
	IdleTimeoutInMinutes     int
	JanitorIntervalInSeconds int
}

type AppSubmission struct {
	LockExpirationInSeconds  int
	DraftExpirationInMinutes int
}

type AppRabbitMQ struct {
	EventQueue string
}
