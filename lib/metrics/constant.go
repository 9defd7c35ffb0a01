package metrics

const (
	Namespace    = "minidao"
	DAOSubsystem = "dao"
	APISubsystem = "api"
)
