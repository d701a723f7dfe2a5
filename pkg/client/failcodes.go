package client

import (
	clienterr "github.com/vango-dev/ibtws/internal/errors"
	"github.com/vango-dev/ibtws/pkg/protocol"
)

// sendFailure maps each outbound message to the code reported when it
// cannot be written. Several requests share a code.
var sendFailure = map[protocol.OutTag]int{
	protocol.OutReqMktData:                 clienterr.FailSendReqMkt,
	protocol.OutCancelMktData:              clienterr.FailSendCanMkt,
	protocol.OutPlaceOrder:                 clienterr.FailSendOrder,
	protocol.OutCancelOrder:                clienterr.FailSendCOrder,
	protocol.OutReqOpenOrders:              clienterr.FailSendOOrder,
	protocol.OutReqAccountData:             clienterr.FailSendAcct,
	protocol.OutReqExecutions:              clienterr.FailSendExec,
	protocol.OutReqIDs:                     clienterr.FailSendCOrder,
	protocol.OutReqContractData:            clienterr.FailSendReqContract,
	protocol.OutReqMktDepth:                clienterr.FailSendReqMktDepth,
	protocol.OutCancelMktDepth:             clienterr.FailSendCanMktDepth,
	protocol.OutReqNewsBulletins:           clienterr.FailSendCOrder,
	protocol.OutCancelNewsBulletins:        clienterr.FailSendCOrder,
	protocol.OutSetServerLogLevel:          clienterr.FailSendServerLogLevel,
	protocol.OutReqAutoOpenOrders:          clienterr.FailSendOOrder,
	protocol.OutReqAllOpenOrders:           clienterr.FailSendOOrder,
	protocol.OutReqManagedAccts:            clienterr.FailSendOOrder,
	protocol.OutReqFA:                      clienterr.FailSendFARequest,
	protocol.OutReplaceFA:                  clienterr.FailSendFAReplace,
	protocol.OutReqHistoricalData:          clienterr.FailSendReqHistData,
	protocol.OutExerciseOptions:            clienterr.FailSendReqMkt,
	protocol.OutReqScannerSubscription:     clienterr.FailSendReqScanner,
	protocol.OutCancelScannerSubscription:  clienterr.FailSendCanScanner,
	protocol.OutReqScannerParameters:       clienterr.FailSendReqScannerParameters,
	protocol.OutCancelHistoricalData:       clienterr.FailSendCanHistData,
	protocol.OutReqCurrentTime:             clienterr.FailSendReqCurrTime,
	protocol.OutReqRealTimeBars:            clienterr.FailSendReqRTBars,
	protocol.OutCancelRealTimeBars:         clienterr.FailSendCanRTBars,
	protocol.OutReqFundamentalData:         clienterr.FailSendReqFundData,
	protocol.OutCancelFundamentalData:      clienterr.FailSendCanFundData,
	protocol.OutReqCalcImpliedVolat:        clienterr.FailSendReqCalcImpliedVolat,
	protocol.OutReqCalcOptionPrice:         clienterr.FailSendReqCalcOptionPrice,
	protocol.OutCancelCalcImpliedVolat:     clienterr.FailSendCanCalcImpliedVolat,
	protocol.OutCancelCalcOptionPrice:      clienterr.FailSendCanCalcOptionPrice,
	protocol.OutReqGlobalCancel:            clienterr.FailSendReqGlobalCancel,
	protocol.OutReqMarketDataType:          clienterr.FailSendReqMarketDataType,
	protocol.OutReqPositions:               clienterr.FailSendReqPositions,
	protocol.OutCancelPositions:            clienterr.FailSendCanPositions,
	protocol.OutReqAccountSummary:          clienterr.FailSendReqAccountData,
	protocol.OutCancelAccountSummary:       clienterr.FailSendCanAccountData,
	protocol.OutVerifyRequest:              clienterr.FailSendVerifyRequest,
	protocol.OutVerifyMessage:              clienterr.FailSendVerifyMessage,
	protocol.OutQueryDisplayGroups:         clienterr.FailSendQueryDisplayGroups,
	protocol.OutSubscribeToGroupEvents:     clienterr.FailSendSubscribeToGroupEvents,
	protocol.OutUpdateDisplayGroup:         clienterr.FailSendUpdateDisplayGroup,
	protocol.OutUnsubscribeFromGroupEvents: clienterr.FailSendUnsubscribeGroupEvents,
	protocol.OutStartAPI:                   clienterr.FailSendStartAPI,
}

func failCode(t protocol.OutTag) int {
	if code, ok := sendFailure[t]; ok {
		return code
	}
	return clienterr.BadMessage
}
