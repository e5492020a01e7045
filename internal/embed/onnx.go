package embed

import (
	"context"
	"fmt"
	"sync"

	tokenizer "github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"
)

// ONNXBackend runs a sentence-transformer export (e.g. all-MiniLM-L6-v2)
// through ONNX Runtime. Sentence vectors are the attention-masked mean of
// last_hidden_state.
type ONNXBackend struct {
	tok     *tokenizer.Tokenizer
	session *ort.DynamicAdvancedSession
	name    string

	// ONNX Runtime sessions are not safe for concurrent Run calls.
	mu sync.Mutex
}

// NewONNXBackend loads the tokenizer and model and initializes the ONNX
// Runtime environment.
func NewONNXBackend(cfg ONNXConfig) (*ONNXBackend, error) {
	tok, err := pretrained.FromFile(cfg.TokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize ONNX environment: %w", err)
		}
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer opts.Destroy()

	if err := opts.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll); err != nil {
		return nil, fmt.Errorf("set graph optimization: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(
		cfg.ModelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	name := cfg.ModelName
	if name == "" {
		name = "all-MiniLM-L6-v2"
	}

	return &ONNXBackend{tok: tok, session: session, name: name}, nil
}

func (b *ONNXBackend) ModelID() string {
	return b.name
}

// Embed tokenizes texts as one padded batch and runs a single inference.
func (b *ONNXBackend) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inputs := make([]tokenizer.EncodeInput, len(texts))
	for i, t := range texts {
		inputs[i] = tokenizer.NewSingleEncodeInput(tokenizer.NewInputSequence(t))
	}

	encodings, err := b.tok.EncodeBatch(inputs, true)
	if err != nil {
		return nil, &ErrBackend{Backend: "onnx", Err: fmt.Errorf("tokenize: %w", err)}
	}

	maxLen := 0
	for _, enc := range encodings {
		if l := len(enc.GetIds()); l > maxLen {
			maxLen = l
		}
	}

	batch := len(encodings)
	inputIDs := make([]int64, batch*maxLen)
	mask := make([]int64, batch*maxLen)
	typeIDs := make([]int64, batch*maxLen)

	for i, enc := range encodings {
		ids := enc.GetIds()
		am := enc.GetAttentionMask()
		offset := i * maxLen
		for j := range ids {
			inputIDs[offset+j] = int64(ids[j])
			mask[offset+j] = int64(am[j])
		}
	}

	shape := ort.NewShape(int64(batch), int64(maxLen))
	idsTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, fmt.Errorf("create input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()

	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("create attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()

	typesTensor, err := ort.NewTensor(shape, typeIDs)
	if err != nil {
		return nil, fmt.Errorf("create token_type_ids tensor: %w", err)
	}
	defer typesTensor.Destroy()

	outputs := make([]ort.Value, 1)

	b.mu.Lock()
	err = b.session.Run([]ort.Value{idsTensor, maskTensor, typesTensor}, outputs)
	b.mu.Unlock()
	if err != nil {
		return nil, &ErrBackend{Backend: "onnx", Err: fmt.Errorf("inference: %w", err)}
	}
	defer outputs[0].Destroy()

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, &ErrBackend{Backend: "onnx", Err: fmt.Errorf("output tensor is not float32")}
	}

	shapeOut := hidden.GetShape()
	if len(shapeOut) != 3 {
		return nil, &ErrBackend{Backend: "onnx", Err: fmt.Errorf("unexpected output shape %v", shapeOut)}
	}

	return meanPool(hidden.GetData(), mask, int(shapeOut[0]), int(shapeOut[1]), int(shapeOut[2])), nil
}

// meanPool averages token states whose attention mask is set. The result
// is copied out so it outlives the output tensor.
func meanPool(data []float32, mask []int64, batch, seqLen, dim int) [][]float64 {
	out := make([][]float64, batch)
	for i := range batch {
		v := make([]float64, dim)
		count := 0
		for t := range seqLen {
			if mask[i*seqLen+t] == 0 {
				continue
			}
			count++
			base := (i*seqLen + t) * dim
			for d := range dim {
				v[d] += float64(data[base+d])
			}
		}
		if count > 0 {
			for d := range v {
				v[d] /= float64(count)
			}
		}
		out[i] = v
	}
	return out
}

// Close destroys the session and the ONNX Runtime environment.
func (b *ONNXBackend) Close() error {
	if b.session != nil {
		if err := b.session.Destroy(); err != nil {
			return err
		}
		b.session = nil
	}
	return ort.DestroyEnvironment()
}
