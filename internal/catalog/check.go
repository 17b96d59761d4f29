package catalog

import "fmt"

// Severity grades a consistency finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is a consistency problem in an otherwise loadable catalog.
type Finding struct {
	Severity Severity
	Path     string
	Message  string
}

// Check reports consistency problems the loader does not enforce: types
// owned by undeclared packages, duplicate package declarations, and declared
// packages that own no types.
func (r *Root) Check() []Finding {
	var findings []Finding

	declared := make(map[string]int, len(r.packages))
	for i, p := range r.packages {
		if first, dup := declared[p]; dup {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("/packages/%d", i),
				Message:  fmt.Sprintf("package %q already declared at /packages/%d", p, first),
			})
			continue
		}
		declared[p] = i
	}

	reported := make(map[string]bool)
	for i, t := range r.types {
		if _, ok := declared[t.PackageName]; ok || reported[t.PackageName] {
			continue
		}
		reported[t.PackageName] = true
		findings = append(findings, Finding{
			Severity: SeverityWarning,
			Path:     fmt.Sprintf("/types/%d/packageName", i),
			Message:  fmt.Sprintf("package %q is not declared in packages", t.PackageName),
		})
	}

	for i, p := range r.packages {
		if declared[p] != i {
			continue
		}
		if len(r.byPackage[p]) == 0 {
			findings = append(findings, Finding{
				Severity: SeverityInfo,
				Path:     fmt.Sprintf("/packages/%d", i),
				Message:  fmt.Sprintf("package %q declares no types", p),
			})
		}
	}
	return findings
}
