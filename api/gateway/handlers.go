package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/meshplus/txkernel/internal/executor"
	"github.com/meshplus/txkernel/internal/kernel"
	"github.com/meshplus/txkernel/internal/store"
	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/vm"
	"github.com/pkg/errors"
)

type kernelResponse struct {
	ProgramHash felt.Digest   `json:"program_hash"`
	KernelHash  felt.Digest   `json:"kernel_hash"`
	ProcCount   uint16        `json:"proc_count"`
	Procedures  []felt.Digest `json:"procedures"`
}

type inputStackRequest struct {
	AccountID            model.AccountID `json:"account_id"`
	InitialAccountHash   felt.Digest     `json:"initial_account_hash"`
	InputNotesCommitment felt.Digest     `json:"input_notes_commitment"`
	BlockHash            felt.Digest     `json:"block_hash"`
}

type inputStackResponse struct {
	Stack *vm.StackInputs `json:"stack"`
}

type outputsRequest struct {
	Stack       *vm.StackOutputs   `json:"stack"`
	AdviceMap   *vm.AdviceMap      `json:"advice_map"`
	OutputNotes []model.OutputNote `json:"output_notes"`
}

type executeRequest struct {
	inputStackRequest
	AdviceStack []felt.Felt   `json:"advice_stack"`
	AdviceMap   *vm.AdviceMap `json:"advice_map"`
}

type submitResponse struct {
	AccountID model.AccountID `json:"account_id"`
	Status    string          `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (g *Gateway) getKernel(w http.ResponseWriter, r *http.Request) {
	info := g.provider.ProgramInfo()
	g.writeJSON(w, http.StatusOK, &kernelResponse{
		ProgramHash: info.ProgramHash(),
		KernelHash:  info.Kernel().Hash(),
		ProcCount:   info.Kernel().ProcCount(),
		Procedures:  info.Kernel().ProcHashes(),
	})
}

func (g *Gateway) getKernelSource(w http.ResponseWriter, r *http.Request) {
	source := g.provider.KernelSource()
	if source == "" {
		g.writeError(w, http.StatusNotFound, errors.New("kernel source not configured"))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(source))
}

func (g *Gateway) buildInputStack(w http.ResponseWriter, r *http.Request) {
	var req inputStackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode request"))
		return
	}

	stack := kernel.BuildInputStackForProgram(g.provider.ProgramInfo(), req.AccountID,
		req.InitialAccountHash, req.InputNotesCommitment, req.BlockHash)
	g.writeJSON(w, http.StatusOK, &inputStackResponse{Stack: stack})
}

func (g *Gateway) assembleOutputs(w http.ResponseWriter, r *http.Request) {
	var req outputsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode request"))
		return
	}

	outputs, err := kernel.FromTransactionParts(req.Stack, req.AdviceMap, req.OutputNotes)
	if err != nil {
		g.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	g.writeJSON(w, http.StatusOK, outputs)
}

func (g *Gateway) executeTransaction(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode request"))
		return
	}

	async := false
	if v := r.URL.Query().Get("async"); v != "" {
		var err error
		if async, err = strconv.ParseBool(v); err != nil {
			g.writeError(w, http.StatusBadRequest, errors.Wrap(err, "parse async"))
			return
		}
	}

	txCtx := &executor.TransactionContext{
		AccountID:            req.AccountID,
		InitialAccountHash:   req.InitialAccountHash,
		InputNotesCommitment: req.InputNotesCommitment,
		BlockHash:            req.BlockHash,
		Advice: &vm.AdviceInputs{
			Stack: req.AdviceStack,
			Map:   req.AdviceMap,
		},
	}

	if async {
		if err := g.executor.Submit(txCtx); err != nil {
			g.writeError(w, executeStatus(err), err)
			return
		}
		g.writeJSON(w, http.StatusAccepted, &submitResponse{AccountID: req.AccountID, Status: "queued"})
		return
	}

	tx, err := g.executor.Execute(r.Context(), txCtx)
	if err != nil {
		g.writeError(w, executeStatus(err), err)
		return
	}
	g.writeJSON(w, http.StatusOK, tx)
}

// executeStatus separates failures of the transaction itself (422) from
// conditions on the host side.
func executeStatus(err error) int {
	switch {
	case errors.Is(err, vm.ErrTransient),
		errors.Is(err, executor.ErrQueueFull),
		errors.Is(err, executor.ErrExecutorStopped):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, executor.ErrPersistTransaction):
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func (g *Gateway) getTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := felt.DigestFromHex(mux.Vars(r)["id"])
	if err != nil {
		g.writeError(w, http.StatusBadRequest, err)
		return
	}

	tx, err := g.reader.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrTransactionNotFound) {
			g.writeError(w, http.StatusNotFound, err)
			return
		}
		g.writeError(w, http.StatusInternalServerError, err)
		return
	}
	g.writeJSON(w, http.StatusOK, tx)
}

func (g *Gateway) listAccountTransactions(w http.ResponseWriter, r *http.Request) {
	var acct model.AccountID
	if err := acct.UnmarshalText([]byte(mux.Vars(r)["id"])); err != nil {
		g.writeError(w, http.StatusBadRequest, err)
		return
	}

	ids, err := g.reader.ListByAccount(acct)
	if err != nil {
		g.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []model.TransactionID{}
	}
	g.writeJSON(w, http.StatusOK, ids)
}

func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.WithField("err", err).Warn("Write response failed")
	}
}

func (g *Gateway) writeError(w http.ResponseWriter, status int, err error) {
	g.logger.WithField("err", err).Debug("Request failed")
	g.writeJSON(w, status, &errorResponse{Error: err.Error()})
}
