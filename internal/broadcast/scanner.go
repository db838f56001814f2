package broadcast

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"

	"github.com/rac-sri/runic/internal/abi"
	"github.com/rac-sri/runic/internal/config"
	"github.com/rac-sri/runic/internal/domain"
	"github.com/rac-sri/runic/internal/project"
)

// runFileName is the file Foundry writes for the most recent run of a
// deploy script on a chain.
const runFileName = "run-latest.json"

// ArtifactReadError wraps a failure to read or parse one artifact file.
// Scanning treats these as non-fatal: the file is skipped and logged.
type ArtifactReadError struct {
	Path string
	Err  error
}

func (e *ArtifactReadError) Error() string {
	return fmt.Sprintf("reading artifact %s: %v", e.Path, e.Err)
}

func (e *ArtifactReadError) Unwrap() error { return e.Err }

// runFile is the subset of a broadcast run record the scanner consumes.
type runFile struct {
	Transactions []runTransaction `json:"transactions"`
}

type runTransaction struct {
	TransactionType string `json:"transactionType"`
	ContractName    string `json:"contractName"`
	ContractAddress string `json:"contractAddress"`
	Hash            string `json:"hash"`
	Arguments       []any  `json:"arguments"`
}

func (t runTransaction) isCreation() bool {
	return t.TransactionType == "CREATE" || t.TransactionType == "CREATE2"
}

// Scanner discovers deployments from the broadcast directory tree.
type Scanner struct {
	broadcastDir string
	outDir       string
	chains       config.ChainNames
	log          *slog.Logger
}

// NewScanner builds a scanner over a project's broadcast and output
// directories. The chain name table is injected so the scanner holds no
// global state.
func NewScanner(proj *project.Project, chains config.ChainNames, log *slog.Logger) *Scanner {
	return &Scanner{
		broadcastDir: proj.BroadcastDir,
		outDir:       proj.OutDir,
		chains:       chains,
		log:          log,
	}
}

// Scan walks the broadcast tree and returns the raw deployment list plus the
// deduplicated set of chain ids seen, in discovery order. Individual bad
// artifacts are logged and skipped; only a missing tree yields an empty
// result.
func (s *Scanner) Scan() ([]*domain.Deployment, []uint64, error) {
	if _, err := os.Stat(s.broadcastDir); os.IsNotExist(err) {
		s.log.Info("broadcast directory does not exist", "dir", s.broadcastDir)
		return nil, nil, nil
	}

	var deployments []*domain.Deployment
	err := filepath.WalkDir(s.broadcastDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warn("skipping unreadable path", "path", path, "err", err)
			return nil
		}
		if d.IsDir() || d.Name() != runFileName {
			return nil
		}
		found, err := s.parseRunFile(path)
		if err != nil {
			s.log.Warn("skipping run file", "err", &ArtifactReadError{Path: path, Err: err})
			return nil
		}
		deployments = append(deployments, found...)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking %s: %w", s.broadcastDir, err)
	}

	chainIDs := lo.Uniq(lo.Map(deployments, func(d *domain.Deployment, _ int) uint64 {
		return d.ChainID
	}))

	s.log.Info("scan complete", "deployments", len(deployments), "chains", len(chainIDs))
	return deployments, chainIDs, nil
}

// Discover runs a full scan followed by proxy resolution, producing the
// finalized deployment list.
func (s *Scanner) Discover() ([]*domain.Deployment, []uint64, error) {
	deployments, chainIDs, err := s.Scan()
	if err != nil {
		return nil, nil, err
	}
	ResolveProxies(deployments)
	return deployments, chainIDs, nil
}

// parseRunFile extracts one Deployment per contract-creation transaction in
// a run record. The chain id comes from the record's parent directory name.
func (s *Scanner) parseRunFile(path string) ([]*domain.Deployment, error) {
	chainIDName := filepath.Base(filepath.Dir(path))
	chainID, err := strconv.ParseUint(chainIDName, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parent directory %q is not a chain id", chainIDName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var run runFile
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run record: %w", err)
	}

	network := s.chains.Name(chainID)

	var deployments []*domain.Deployment
	for _, tx := range run.Transactions {
		if !tx.isCreation() || tx.ContractName == "" || tx.ContractAddress == "" {
			continue
		}
		if !common.IsHexAddress(tx.ContractAddress) {
			s.log.Warn("skipping creation with invalid address",
				"contract", tx.ContractName, "address", tx.ContractAddress)
			continue
		}

		functions, abiPath := s.loadInterface(tx.ContractName)

		deployments = append(deployments, &domain.Deployment{
			Name:            tx.ContractName,
			Address:         tx.ContractAddress,
			CallableAddress: tx.ContractAddress,
			Network:         network,
			ChainID:         chainID,
			TxHash:          tx.Hash,
			ABIPath:         abiPath,
			Functions:       functions,
			ConstructorArgs: stringifyArguments(tx.Arguments),
		})
	}
	return deployments, nil
}

// loadInterface resolves a contract's interface artifact by the build output
// naming convention: out/<Name>.sol/<Name>.json, falling back to the flat
// out/<Name>.json. Failures degrade to an empty function list so the
// deployment stays listed.
func (s *Scanner) loadInterface(contractName string) ([]abi.ContractFunction, string) {
	candidates := []string{
		filepath.Join(s.outDir, contractName+".sol", contractName+".json"),
		filepath.Join(s.outDir, contractName+".json"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		functions, dropped, err := abi.Parse(extractABI(data))
		if err != nil {
			s.log.Warn("unusable interface artifact",
				"err", &ArtifactReadError{Path: path, Err: err})
			return nil, path
		}
		if len(dropped) > 0 {
			s.log.Warn("skipping functions with unsupported parameter types",
				"contract", contractName, "functions", dropped)
		}
		return functions, path
	}
	return nil, ""
}

// extractABI unwraps a build artifact's "abi" field; a bare interface array
// passes through untouched.
func extractABI(data []byte) []byte {
	var artifact struct {
		ABI json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(data, &artifact); err == nil && len(artifact.ABI) > 0 {
		return artifact.ABI
	}
	return data
}

// stringifyArguments renders constructor arguments to their string forms:
// JSON strings verbatim, everything else as compact JSON.
func stringifyArguments(args []any) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	for i, arg := range args {
		if s, ok := arg.(string); ok {
			out[i] = s
			continue
		}
		raw, err := json.Marshal(arg)
		if err != nil {
			out[i] = fmt.Sprintf("%v", arg)
			continue
		}
		out[i] = string(raw)
	}
	return out
}
