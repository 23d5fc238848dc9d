package cli

// Exported for testing
var ParseParams = parseParams
