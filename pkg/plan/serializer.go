package plan

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/fsorg/pkg/errors"
	"github.com/arthur-debert/fsorg/pkg/logging"
	"github.com/arthur-debert/fsorg/pkg/types"
)

// Separator splits the source and destination halves of a plan line
const Separator = "->"

const maxLineSize = 1 << 20

// Export writes p to a new file at path, one action per line. An existing
// file is never overwritten.
func Export(fsys types.FS, p *types.Plan, path string) error {
	logger := logging.GetLogger("plan.serializer")

	f, err := fsys.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Newf(errors.ErrPlanExists, "plan file %s already exists", path).
				WithDetail("path", path)
		}
		return errors.Wrapf(err, errors.ErrPlanWrite, "failed to create plan file %s", path).
			WithDetail("path", path)
	}

	werr := Write(f, p)
	cerr := f.Close()
	if werr != nil {
		return errors.Wrapf(werr, errors.ErrPlanWrite, "failed to write plan file %s", path).
			WithDetail("path", path)
	}
	if cerr != nil {
		return errors.Wrapf(cerr, errors.ErrPlanWrite, "failed to close plan file %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Int("actions", p.Len()).Msg("Plan exported")
	return nil
}

// Write renders p in plan-file form
func Write(w io.Writer, p *types.Plan) error {
	bw := bufio.NewWriter(w)
	if p != nil {
		for _, a := range p.Actions {
			if _, err := bw.WriteString(a.String() + "\n"); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Import loads a plan written by Export. Quotes around either half are
// optional. Any malformed line rejects the whole file. The returned plan
// carries zero statistics.
func Import(fsys types.FS, path string) (*types.Plan, error) {
	logger := logging.GetLogger("plan.serializer")

	f, err := fsys.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlanOpen, "failed to open plan file %s", path).
			WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	p, err := Read(f)
	if err != nil {
		if fe, ok := err.(*errors.FsorgError); ok {
			return nil, fe.WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrPlanOpen, "failed to read plan file %s", path).
			WithDetail("path", path)
	}

	logger.Info().Str("path", path).Int("actions", p.Len()).Msg("Plan imported")
	return p, nil
}

// Read parses plan-file lines from r
func Read(r io.Reader) (*types.Plan, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	p := &types.Plan{}
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		action, reason := parseLine(line)
		if reason != "" {
			return nil, errors.Newf(errors.ErrPlanInvalid, "line %d: %s", lineNo, reason).
				WithDetail("line", lineNo)
		}
		p.Actions = append(p.Actions, action)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return p, nil
}

// parseLine splits one plan line. A non-empty reason marks the line invalid.
func parseLine(line string) (types.Action, string) {
	src, dst, ok := strings.Cut(line, Separator)
	if !ok {
		return types.Action{}, "missing \"" + Separator + "\" separator"
	}

	src = strings.Trim(src, ` "`)
	dst = strings.Trim(dst, ` "`)
	if src == "" || dst == "" {
		return types.Action{}, "empty source or destination"
	}
	return types.Action{Source: src, Destination: dst}, ""
}
