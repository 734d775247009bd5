package common

// DefaultBaseURL is the public origin used for share links when none is configured.
const DefaultBaseURL = "https://cardcraft.pages.dev"

// DraftIDAlphabet excludes characters that are easy to misread (0/O, 1/l/I).
const DraftIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"
