package metrics

// InitPrometheusMetrics replaces the nop metrics; call it once, before the
// node starts.
func InitPrometheusMetrics() {
	Node = PromNodeMetrics()
	DAO = PromDAOMetrics()
	API = PromAPIMetrics()

	Node.SetInfo()
}
