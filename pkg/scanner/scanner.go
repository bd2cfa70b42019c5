// Package scanner is the public surface of the scan engine. The service
// layers (CLI, HTTP) depend on this package only.
package scanner

import (
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/config"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/engine"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/rules"
	"github.com/SpyrosArg/Api-Key-Hunter-V1/pkg/scanner/types"
)

type ScanReport = types.ScanReport
type Summary = types.Summary
type RiskLevel = types.RiskLevel
type ApiKeyFinding = types.ApiKeyFinding
type SensitiveFileFinding = types.SensitiveFileFinding
type CodeIssueFinding = types.CodeIssueFinding
type ContentUnit = types.ContentUnit

type Catalog = rules.Catalog
type Pattern = rules.Pattern

type FetchError = engine.FetchError

var ErrInvalidDirectory = config.ErrInvalidDirectory
var ErrInvalidURL = config.ErrInvalidURL

var ScanDirectory = engine.ScanDirectory
var ScanURL = engine.ScanURL

var DefaultCatalog = rules.Default
var LoadExtraRules = rules.LoadExtra
