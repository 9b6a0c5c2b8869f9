package validator

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"bundlecheck/internal/api"
	"bundlecheck/internal/bundle"
	"bundlecheck/internal/mcpserver"
)

// unitResult is what one worker returns for one component reference.
type unitResult struct {
	ordinal  int
	subject  string
	findings []api.Finding
	record   *api.ComponentRecord
	servers  *mcpserver.ServersDocument
}

// resolveAll fans the references out over a bounded worker pool and returns
// the per-reference results restored to declared order. Each reference is
// processed end-to-end by exactly one worker; a reference's failure
// terminates only its own unit of work.
func resolveAll(ctx context.Context, resolver *bundle.Resolver, refs []bundle.Reference, parallel int) []unitResult {
	if len(refs) == 0 {
		return nil
	}

	numWorkers := parallel
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	if numWorkers > len(refs) {
		numWorkers = len(refs)
	}

	refChan := make(chan bundle.Reference, len(refs))
	resultChan := make(chan unitResult, len(refs))

	for _, ref := range refs {
		refChan <- ref
	}
	close(refChan)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ref := range refChan {
				select {
				case <-ctx.Done():
					return
				default:
				}
				resultChan <- resolveOne(resolver, ref)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]unitResult, 0, len(refs))
	for res := range resultChan {
		results = append(results, res)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].ordinal < results[j].ordinal
	})
	return results
}

// resolveOne processes a single component reference: path resolution,
// existence, and the kind-specific load (header block for file-backed
// kinds, server document for mcp).
func resolveOne(resolver *bundle.Resolver, ref bundle.Reference) unitResult {
	out := unitResult{ordinal: ref.Ordinal, subject: ref.Subject}

	path, err := resolver.Resolve(ref.Raw)
	if err != nil {
		out.findings = append(out.findings, classifyResolveError(ref, err))
		return out
	}

	if ref.Kind == api.KindMCP {
		doc, findings := mcpserver.LoadServersDocument(path, ref.Subject)
		out.findings = findings
		out.servers = doc
		out.record = &api.ComponentRecord{
			Kind: ref.Kind,
			Name: baseName(path),
			Ref:  ref.Raw,
			Path: path,
		}
		return out
	}

	headerPath := path
	if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
		if ref.Kind != api.KindSkill {
			out.findings = append(out.findings, api.NewError(api.CodeReferenceNotFound, ref.Subject,
				"%q resolves to a directory; %s references must point at a file", ref.Raw, ref.Kind))
			return out
		}
		headerPath = filepath.Join(path, bundle.SkillHeaderName)
		if _, statErr := os.Stat(headerPath); statErr != nil {
			out.findings = append(out.findings, api.NewError(api.CodeReferenceNotFound, ref.Subject,
				"skill directory %q has no %s", ref.Raw, bundle.SkillHeaderName))
			return out
		}
	}

	header, findings := bundle.ParseHeaderFile(headerPath, ref.Subject)
	out.findings = findings

	name := baseName(path)
	if header != nil && strings.TrimSpace(header.Name) != "" {
		name = header.Name
	}
	out.record = &api.ComponentRecord{
		Kind:   ref.Kind,
		Name:   name,
		Ref:    ref.Raw,
		Path:   path,
		Header: header,
	}
	return out
}

// classifyResolveError maps a resolver error onto the finding taxonomy.
func classifyResolveError(ref bundle.Reference, err error) api.Finding {
	switch {
	case errors.Is(err, bundle.ErrEscapesRoot):
		return api.NewError(api.CodePathEscape, ref.Subject,
			"reference %q escapes the bundle root: %v", ref.Raw, err)
	case errors.Is(err, bundle.ErrSymlinkCycle):
		return api.NewError(api.CodePathEscape, ref.Subject,
			"reference %q runs into a symlink cycle: %v", ref.Raw, err)
	case errors.Is(err, fs.ErrNotExist):
		return api.NewError(api.CodeReferenceNotFound, ref.Subject,
			"reference %q does not resolve to a file in the bundle", ref.Raw)
	default:
		return api.NewError(api.CodeUnreadableFile, ref.Subject,
			"cannot resolve reference %q: %v", ref.Raw, err)
	}
}

// baseName is the fallback component identifier: the resolved file's base
// name without its extension.
func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
