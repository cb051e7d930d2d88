// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logos

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httptypes "github.com/velocityonboard/onboard-service/internal/http/types"
	"github.com/velocityonboard/onboard-service/internal/logging"
	"github.com/velocityonboard/onboard-service/internal/types"
	"github.com/velocityonboard/onboard-service/pkg/authentication"
)

const formField = "file"

type API struct {
	service ServiceInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, logger logging.LoggerInterface) *API {
	return &API{
		service: service,
		logger:  logger,
	}
}

// RegisterEndpoints mounts the upload route; r must already authenticate requests.
func (a *API) RegisterEndpoints(r chi.Router) {
	r.Post("/logos", a.upload)
}

func (a *API) upload(w http.ResponseWriter, r *http.Request) {
	p, ok := authentication.RequirePrincipal(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxSize+(1<<20))
	if err := r.ParseMultipartForm(MaxSize); err != nil {
		httptypes.WriteError(w, types.NewValidationError("logo must be sent as multipart form field "+formField+" of at most 2 MiB"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formField)
	if err != nil {
		httptypes.WriteError(w, types.NewValidationError(formField+" is required"))
		return
	}
	defer file.Close()

	logo, err := a.service.Upload(r.Context(), p, &File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		httptypes.WriteError(w, err)
		return
	}

	httptypes.WriteData(w, http.StatusCreated, logo)
}
