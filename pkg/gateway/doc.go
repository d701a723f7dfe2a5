// Package gateway is a scripted stand-in for a trading gateway. It speaks
// the connection handshake and answers a small set of requests with canned
// replies, which is enough to exercise a client end to end without a live
// gateway.
//
// Supported requests:
//
//	REQ_CURRENT_TIME        CURRENT_TIME with the server clock
//	REQ_IDS                 NEXT_VALID_ID
//	REQ_CONTRACT_DATA       ERR_MSG 200 (no security definition)
//	REQ_MANAGED_ACCTS       MANAGED_ACCTS
//	REQ_SCANNER_PARAMETERS  SCANNER_PARAMETERS
//	REQ_FA                  RECEIVE_FA
//	START_API               NEXT_VALID_ID and MANAGED_ACCTS
//
// Any other request ends the session, since its field count is unknown.
package gateway
