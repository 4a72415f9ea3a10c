package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sadriving/sadriving-backend/internal/response"
)

// ContractFilename is the name browsers are told to save the contract as.
const ContractFilename = "contract.pdf"

// ContractHandler serves the program contract download.
type ContractHandler struct {
	path string
	log  zerolog.Logger
}

// NewContractHandler creates a new ContractHandler for the file at path.
func NewContractHandler(path string, log zerolog.Logger) *ContractHandler {
	return &ContractHandler{
		path: path,
		log:  log.With().Str("component", "contract_handler").Logger(),
	}
}

// DownloadContract godoc
// GET /contract.pdf
func (h *ContractHandler) DownloadContract(c *gin.Context) {
	info, err := os.Stat(h.path)
	if err != nil || info.IsDir() {
		h.log.Error().Err(err).Str("path", h.path).Msg("Contract file unavailable")
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	c.FileAttachment(h.path, ContractFilename)
}
