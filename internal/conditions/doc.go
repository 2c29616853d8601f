// Package conditions generates the trial manifests consumed by the
// experiment-presentation tool.
//
// Each experiment directory holds a contexts/ and a targets/ folder of audio
// files. Every context is paired with every target:
//
//	stimuli/
//	  exp1/
//	    contexts/a.wav b.wav
//	    targets/x.wav y.wav
//
// yields (exp1,a,x) (exp1,a,y) (exp1,b,x) (exp1,b,y). Listings are sorted by
// path before pairing.
package conditions
