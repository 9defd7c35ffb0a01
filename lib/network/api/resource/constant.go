package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLAccounts     = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLDAOs         = APIPrefix + APIVersionV1 + "/daos/{id}"
	URLDAOVoters    = APIPrefix + APIVersionV1 + "/daos/{id}/voters"
	URLDAOVoter     = APIPrefix + APIVersionV1 + "/daos/{id}/voters/{voter}"
	URLDAOProposals = APIPrefix + APIVersionV1 + "/daos/{id}/proposals"
	URLDAOProposal  = APIPrefix + APIVersionV1 + "/daos/{id}/proposals/{index}"
	URLDAOEvents    = APIPrefix + APIVersionV1 + "/daos/{id}/events"
	URLTransactions = APIPrefix + APIVersionV1 + "/transactions"
)
