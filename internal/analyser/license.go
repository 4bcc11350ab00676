package analyser

import (
	"context"
	"crypto/md5"
	"embed"
	"encoding/hex"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/temirov/codescan/internal/codebase"
	"github.com/temirov/codescan/internal/finding"
)

const (
	licenseAnalyserIDConstant           = "license"
	licenseFileKeyConstant              = "license.file"
	licenseIdentifierKeyConstant        = "license.identifier"
	licenseFileExistsMessageConstant    = "License file exists."
	multipleLicenseFilesMessageConstant = "Multiple license files found."
	unknownLicenseMessageConstant       = "Unknown license."
	licenseDataDirectoryConstant        = "data/licenses"
	licenseDataSuffixConstant           = ".txt"

	// maxSignatureTokens caps the fingerprint length; long license texts are
	// identified by their opening sentences.
	maxSignatureTokensConstant = 20

	// licenseMatchThreshold is the minimum token overlap ratio accepted as a
	// license identification.
	licenseMatchThresholdConstant = 0.5
)

var licenseFilePatterns = []string{
	"/license",
	"/license.*",
	"/licence",
	"/licence.*",
	"/copying",
	"/copying.*",
}

//go:embed data/licenses/*.txt
var licenseTexts embed.FS

var (
	carriageReturnPattern     = regexp.MustCompile(`\r`)
	blankLineRunPattern       = regexp.MustCompile(`\n(\s*\n)+`)
	whitespaceRunPattern      = regexp.MustCompile(`\s+`)
	strippedCharactersPattern = regexp.MustCompile(`[^\w. ]`)
	sentenceSeparatorPattern  = regexp.MustCompile(`\.+`)
)

// licenseSignatures maps SPDX identifiers to fingerprints of the embedded
// reference texts, computed once at init with the same normalization applied
// to scanned files.
var licenseSignatures = loadLicenseSignatures()

func loadLicenseSignatures() map[string][]string {
	signatures := map[string][]string{}

	entries, readError := licenseTexts.ReadDir(licenseDataDirectoryConstant)
	if readError != nil {
		return signatures
	}

	for _, entry := range entries {
		content, contentError := licenseTexts.ReadFile(licenseDataDirectoryConstant + "/" + entry.Name())
		if contentError != nil {
			continue
		}
		identifier := strings.TrimSuffix(entry.Name(), licenseDataSuffixConstant)
		signatures[identifier] = textSignature(string(content), maxSignatureTokensConstant)
	}

	return signatures
}

// textSignature reduces a license text to an ordered list of sentence hashes:
// blank-line runs become sentence breaks, whitespace collapses, punctuation
// other than periods is stripped, and each lowercased sentence is hashed.
func textSignature(text string, maxTokens int) []string {
	normalized := carriageReturnPattern.ReplaceAllString(text, "")
	normalized = blankLineRunPattern.ReplaceAllString(normalized, ".")
	normalized = whitespaceRunPattern.ReplaceAllString(normalized, " ")
	normalized = strippedCharactersPattern.ReplaceAllString(normalized, "")

	var tokens []string
	for _, sentence := range sentenceSeparatorPattern.Split(normalized, -1) {
		sentence = strings.ToLower(strings.TrimSpace(sentence))
		if len(sentence) == 0 {
			continue
		}

		digest := md5.Sum([]byte(sentence))
		tokens = append(tokens, hex.EncodeToString(digest[:]))

		if maxTokens > 0 && len(tokens) == maxTokens {
			break
		}
	}

	return tokens
}

// identifyLicense returns the identifiers whose fingerprints best overlap the
// given text, together with the achieved overlap ratio.
func identifyLicense(text string) ([]string, float64) {
	fileTokens := map[string]struct{}{}
	for _, token := range textSignature(text, maxSignatureTokensConstant) {
		fileTokens[token] = struct{}{}
	}

	var bestIdentifiers []string
	bestRatio := 0.0

	identifiers := make([]string, 0, len(licenseSignatures))
	for identifier := range licenseSignatures {
		identifiers = append(identifiers, identifier)
	}
	sort.Strings(identifiers)

	for _, identifier := range identifiers {
		referenceTokens := licenseSignatures[identifier]

		overlap := 0
		for _, token := range referenceTokens {
			if _, shared := fileTokens[token]; shared {
				overlap++
			}
		}

		union := len(fileTokens) + len(referenceTokens) - overlap
		if union == 0 {
			continue
		}

		ratio := float64(overlap) / float64(union)
		switch {
		case ratio > bestRatio:
			bestRatio = ratio
			bestIdentifiers = []string{identifier}
		case ratio == bestRatio && ratio > 0:
			bestIdentifiers = append(bestIdentifiers, identifier)
		}
	}

	return bestIdentifiers, bestRatio
}

// LicenseAnalyser locates license files and identifies the license by
// fingerprinting the text against an embedded reference corpus.
type LicenseAnalyser struct{}

// ID returns the analyser identifier.
func (licenseAnalyser *LicenseAnalyser) ID() string {
	return licenseAnalyserIDConstant
}

// Type returns the processor type.
func (licenseAnalyser *LicenseAnalyser) Type() Type {
	return TypeLicense
}

// Scan inspects license files at the project root.
func (licenseAnalyser *LicenseAnalyser) Scan(executionContext context.Context, codebaseContext *codebase.Context, configuration Configuration) (*finding.Result, error) {
	result := finding.NewResult(licenseAnalyserIDConstant)

	licenseFiles := codebaseContext.FilesMatching(licenseFilePatterns...)
	if len(licenseFiles) == 0 {
		return result, nil
	}

	if len(licenseFiles) > 1 {
		result.AddIssue(2, "", multipleLicenseFilesMessageConstant)
	}

	primaryFile := licenseFiles[0]
	result.AddNotice(3, primaryFile.RelativePath, licenseFileExistsMessageConstant)
	result.AddFragment(licenseFileKeyConstant, primaryFile.RelativePath, primaryFile.RelativePath)

	content, readError := os.ReadFile(codebaseContext.AbsolutePath(primaryFile.RelativePath))
	if readError != nil {
		result.AddIssue(2, primaryFile.RelativePath, unknownLicenseMessageConstant)
		return result, nil
	}

	identifiers, ratio := identifyLicense(string(content))
	if len(identifiers) != 1 || ratio < licenseMatchThresholdConstant {
		result.AddIssue(2, primaryFile.RelativePath, unknownLicenseMessageConstant)
		return result, nil
	}

	result.AddFragment(licenseIdentifierKeyConstant, identifiers[0], primaryFile.RelativePath)
	return result, nil
}
