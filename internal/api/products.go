package api

import (
	"net/http"

	"github.com/codewithboateng/l10nfilter/internal/filter"
	"github.com/codewithboateng/l10nfilter/internal/metrics"
)

type ruleView struct {
	Name    string   `json:"name"`
	Modules []string `json:"modules,omitempty"`
	Scope   string   `json:"scope"`
	Path    string   `json:"path"`
	Entity  string   `json:"entity"`
	Verdict string   `json:"verdict"`
}

type productView struct {
	Product    string     `json:"product"`
	Vocabulary string     `json:"vocabulary"`
	Default    string     `json:"default"`
	Modules    []string   `json:"modules"`
	Rules      []ruleView `json:"rules,omitempty"`
}

func viewOf(t *filter.Table, withRules bool) productView {
	pv := productView{
		Product:    t.Product,
		Vocabulary: string(t.Vocabulary),
		Default:    t.Default.String(),
		Modules:    t.Modules,
	}
	if withRules {
		for _, r := range t.Rules {
			pv.Rules = append(pv.Rules, ruleView{
				Name: r.Name, Modules: r.Modules, Scope: r.Scope.String(),
				Path: r.Path.String(), Entity: r.Entity.String(), Verdict: r.Verdict.String(),
			})
		}
	}
	return pv
}

// GET /api/v1/products
func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	var out []productView
	for _, t := range filter.List() {
		out = append(out, viewOf(t, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": out, "count": len(out)})
}

// GET /api/v1/products/{name}
func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	t, ok := filter.Get(r.PathValue("name"))
	if !ok {
		s.err(w, http.StatusNotFound, "unknown product")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(t, true))
}

type classifyResp struct {
	Product   string           `json:"product"`
	Candidate filter.Candidate `json:"candidate"`
	Verdict   filter.Verdict   `json:"verdict"`
	Value     any              `json:"value"` // in the product's vocabulary
	Rule      string           `json:"rule"`
}

// GET /api/v1/classify?product=&module=&path=[&entity=]
// The presence of the entity parameter, not its value, selects an
// entity-level check.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	product, module := q.Get("product"), q.Get("module")
	if product == "" || module == "" {
		s.err(w, http.StatusBadRequest, "product and module required")
		return
	}
	t, ok := filter.Get(product)
	if !ok {
		s.err(w, http.StatusNotFound, "unknown product")
		return
	}
	path := filter.NormalizePath(q.Get("path"))
	c := filter.FileCandidate(module, path)
	if _, has := q["entity"]; has {
		c = filter.EntityCandidate(module, path, q.Get("entity"))
	}
	d := t.Explain(c)
	metrics.ObserveVerdict(t.Product, d.Verdict)
	writeJSON(w, http.StatusOK, classifyResp{
		Product:   t.Product,
		Candidate: c,
		Verdict:   d.Verdict,
		Value:     t.Vocabulary.Render(d.Verdict),
		Rule:      d.Rule,
	})
}
