package metrics

var (
	Node = NopNodeMetrics()
	DAO  = NopDAOMetrics()
	API  = NopAPIMetrics()
)
