// Package uniuri generates cryptographically secure random strings for invitation tokens.
package uniuri
