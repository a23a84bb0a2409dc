package api

import (
	"github.com/gaze-network/crowdsale/modules/crowdsale/api/httphandler"
	"github.com/gaze-network/crowdsale/modules/crowdsale/usecase"
)

func NewHTTPHandler(usecase *usecase.Usecase, tokenDecimals uint8) *httphandler.HttpHandler {
	return httphandler.New(usecase, tokenDecimals)
}
