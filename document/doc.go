// Package document decodes shaders written as YAML documents.
//
// A document names the stage and lists top-level statements. Each
// statement is a mapping tagged by its kind; expressions are scalars or
// tagged mappings:
//
//	version: "100"
//	stage: vertex
//	statements:
//	  - uniform: a
//	    type: float
//	  - function: main
//	    body:
//	      - declare: test
//	        type: bool
//	        init:
//	          op: "=="
//	          left: {op: "*", left: {op: "+", left: a, right: 5.0}, right: 2.0}
//	          right: 10.0
//
// Types use GLSL spellings such as "highp vec3", "float[4]" or
// "struct Light". Integer literals must be integral.
package document
