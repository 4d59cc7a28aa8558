// Package remote runs programs on a VM service reached over HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/meshplus/txkernel/pkg/felt"
	"github.com/meshplus/txkernel/pkg/model"
	"github.com/meshplus/txkernel/pkg/vm"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const executePath = "/execute"

type executeRequest struct {
	ProgramHash      felt.Digest      `json:"program_hash"`
	KernelProcedures []felt.Digest    `json:"kernel_procedures"`
	StackInputs      *vm.StackInputs  `json:"stack_inputs"`
	AdviceInputs     *vm.AdviceInputs `json:"advice_inputs"`
}

type executeResponse struct {
	StackOutputs *vm.StackOutputs   `json:"stack_outputs"`
	AdviceMap    *vm.AdviceMap      `json:"advice_map"`
	OutputNotes  []model.OutputNote `json:"output_notes"`
	Events       []uint32           `json:"events"`
	Traces       []uint32           `json:"traces"`
	Cycles       uint64             `json:"cycles"`
}

type Client struct {
	endpoint string
	client   *http.Client
}

var _ vm.Executor = (*Client)(nil)

func New(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint: strings.TrimSuffix(strings.TrimSpace(endpoint), "/"),
		client:   &http.Client{Timeout: timeout},
	}
}

// Execute posts the program inputs to the VM service. Connection failures and
// 5xx or 429 answers are reported as vm.ErrTransient.
func (c *Client) Execute(ctx context.Context, program *vm.ProgramInfo, stack *vm.StackInputs, advice *vm.AdviceInputs) (*vm.ExecutionResult, error) {
	data, err := json.Marshal(&executeRequest{
		ProgramHash:      program.ProgramHash(),
		KernelProcedures: program.Kernel().ProcHashes(),
		StackInputs:      stack,
		AdviceInputs:     advice,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal execute request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+executePath, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(vm.ErrTransient, err.Error())
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(vm.ErrTransient, err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.Wrapf(vm.ErrTransient, "vm service answered %d: %s", resp.StatusCode, message(body))
	default:
		return nil, fmt.Errorf("vm service rejected execution with %d: %s", resp.StatusCode, message(body))
	}

	var res executeResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode execute response: %w", err)
	}

	return &vm.ExecutionResult{
		Stack:       res.StackOutputs,
		AdviceMap:   res.AdviceMap,
		OutputNotes: res.OutputNotes,
		Events:      res.Events,
		Traces:      res.Traces,
		Cycles:      res.Cycles,
	}, nil
}

func message(body []byte) string {
	if msg := gjson.GetBytes(body, "error"); msg.Exists() {
		return msg.String()
	}
	return strings.TrimSpace(string(body))
}
