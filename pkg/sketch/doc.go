// Package sketch defines the core model for Drawling: drawing steps whose
// coordinates are either stored literals or references into another step's
// derived snap points, plus the engine that resolves those references.
package sketch
