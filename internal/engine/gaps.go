package engine

import (
	"strings"

	"github.com/nkatyal/resume-relevance/infrastructure/scorers"
	"github.com/nkatyal/resume-relevance/internal/domain"
)

// qualificationKeywords are the degree and credential terms scanned for
// in the role's qualification text. Each keyword found in the role but
// not in the resume becomes a reported gap.
var qualificationKeywords = []string{
	"phd", "doctorate",
	"master", "mba", "m.s", "msc",
	"bachelor", "b.s", "bsc", "b.tech", "b.e",
	"degree", "diploma",
}

// analyzeGaps builds the gap report from the lexical matcher's missing
// sets plus keyword scans of the qualification and certification
// requirements. The report depends only on its inputs, so it is
// identical whether or not backing services are reachable.
func analyzeGaps(role *domain.RoleSpec, candidate *domain.CandidateDoc, match *scorers.MatchReport) domain.GapReport {
	report := domain.GapReport{
		MissingMustHave:   match.MissingMustHave,
		MissingGoodToHave: match.MissingGoodToHave,
	}

	if role.Qualifications != "" {
		report.MissingQualifications = missingKeywords(role.Qualifications, candidate.RawText)
	}
	if len(role.Certifications) > 0 {
		report.MissingCertifications = missingCertifications(role.Certifications, candidate)
	}
	return report
}

// missingKeywords returns qualification keywords present in the role
// text but absent from the candidate text, in keyword-list order.
func missingKeywords(roleText, candidateText string) []string {
	roleFolded := foldText(roleText)
	candidateFolded := foldText(candidateText)

	var missing []string
	for _, kw := range qualificationKeywords {
		if strings.Contains(roleFolded, kw) && !strings.Contains(candidateFolded, kw) {
			missing = append(missing, kw)
		}
	}
	return missing
}

// missingCertifications returns role certifications that appear neither
// in the candidate's certification list nor anywhere in the resume
// text, in role order.
func missingCertifications(required []string, candidate *domain.CandidateDoc) []string {
	held := make([]string, 0, len(candidate.Certifications))
	for _, c := range candidate.Certifications {
		held = append(held, foldText(c))
	}
	rawFolded := foldText(candidate.RawText)

	var missing []string
	for _, cert := range required {
		certFolded := foldText(cert)
		if certFolded == "" {
			continue
		}
		found := strings.Contains(rawFolded, certFolded)
		for _, h := range held {
			if found {
				break
			}
			found = strings.Contains(h, certFolded) || strings.Contains(certFolded, h)
		}
		if !found {
			missing = append(missing, cert)
		}
	}
	return missing
}

// foldText lowercases via the scorers' shared normalization so gap
// scanning and lexical matching agree on token identity.
func foldText(s string) string {
	return scorers.NormalizeToken(s)
}
