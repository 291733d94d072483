package stages

import (
	"fmt"
	"sort"
)

// Validate reports structural problems in a stage document. None of them
// stop the document from loading; unresolvable entries are simply never
// reached by Build.
func Validate(doc *Document) []error {
	if doc == nil {
		return []error{fmt.Errorf("document is empty")}
	}
	var errs []error

	if len(doc.Services) == 0 {
		errs = append(errs, fmt.Errorf("services: no services defined"))
	}
	if doc.Metadata.TotalServices != 0 && doc.Metadata.TotalServices != len(doc.Services) {
		errs = append(errs, fmt.Errorf("metadata.total_services = %d, but %d services listed",
			doc.Metadata.TotalServices, len(doc.Services)))
	}

	for _, code := range sortedKeys(doc.Services) {
		errs = append(errs, validateService(code, doc.Services[code])...)
	}
	return errs
}

func validateService(code string, svc ServiceDoc) []error {
	var errs []error
	prefix := fmt.Sprintf("services[%s]", code)

	if svc.Name == "" {
		errs = append(errs, fmt.Errorf("%s.hizmet_adi is required", prefix))
	}
	errs = append(errs, validateList(prefix+".asama_1", svc.Stage1.Options, svc.Stage1.Total)...)

	// label -> code of the first stage-1 option carrying it
	stage1ByLabel := make(map[string]string)
	for _, o := range svc.Stage1.Options {
		if _, ok := stage1ByLabel[o.Label]; !ok {
			stage1ByLabel[o.Label] = string(o.Code)
		}
	}

	// combined key -> expected codes, for every reachable stage-1/stage-2 pair
	type pair struct{ s1, s2 string }
	reachable := make(map[string]pair)

	for _, label := range sortedKeys(svc.Stage2) {
		dep := svc.Stage2[label]
		depPrefix := fmt.Sprintf("%s.asama_2_bagimliliklari[%q]", prefix, label)

		s1Code, ok := stage1ByLabel[label]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no stage-1 option has this label", depPrefix))
			continue
		}
		if dep.Stage1Code != "" && string(dep.Stage1Code) != s1Code {
			errs = append(errs, fmt.Errorf("%s.asama_1_deger %q does not match stage-1 code %q",
				depPrefix, dep.Stage1Code, s1Code))
		}
		errs = append(errs, validateList(depPrefix, dep.Options, dep.Total)...)

		for _, o := range dep.Options {
			key := CombinedKey(label, o.Label)
			if _, seen := reachable[key]; !seen {
				reachable[key] = pair{s1: s1Code, s2: string(o.Code)}
			}
		}
	}

	for _, key := range sortedKeys(svc.Stage3) {
		dep := svc.Stage3[key]
		depPrefix := fmt.Sprintf("%s.asama_3_bagimliliklari[%q]", prefix, key)

		want, ok := reachable[key]
		if !ok {
			errs = append(errs, fmt.Errorf("%s: no stage-1/stage-2 label pair produces this key", depPrefix))
			continue
		}
		if dep.Stage1Code != "" && string(dep.Stage1Code) != want.s1 {
			errs = append(errs, fmt.Errorf("%s.asama_1_deger %q does not match stage-1 code %q",
				depPrefix, dep.Stage1Code, want.s1))
		}
		if dep.Stage2Code != "" && string(dep.Stage2Code) != want.s2 {
			errs = append(errs, fmt.Errorf("%s.asama_2_deger %q does not match stage-2 code %q",
				depPrefix, dep.Stage2Code, want.s2))
		}
		errs = append(errs, validateList(depPrefix, dep.Options, dep.Total)...)
	}

	return errs
}

func validateList(prefix string, opts []WireOption, total int) []error {
	var errs []error
	seen := make(map[Code]bool)
	for i, o := range opts {
		if o.Code == "" {
			errs = append(errs, fmt.Errorf("%s.secenekler[%d].deger is required", prefix, i))
		} else if seen[o.Code] {
			errs = append(errs, fmt.Errorf("%s.secenekler[%d]: duplicate deger %q", prefix, i, o.Code))
		} else {
			seen[o.Code] = true
		}
		if o.Label == "" {
			errs = append(errs, fmt.Errorf("%s.secenekler[%d].metin is required", prefix, i))
		}
	}
	if total != 0 && total != len(opts) {
		errs = append(errs, fmt.Errorf("%s.toplam = %d, but %d options listed", prefix, total, len(opts)))
	}
	return errs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
