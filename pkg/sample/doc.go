// Package sample holds captured cookie samples and the batch file formats
// they are loaded from.
//
// A batch is a JSON (or YAML) array of groups:
//
//	[
//	    {
//	        "name": "session",
//	        "samples": [
//	            {"ip": "10.0.0.1", "port": 443, "data": "eyJmb28iOiJiYXIifQ==", "sig": "LVMVxSNPdU_G8S3mkjlShUD78s4"}
//	        ]
//	    }
//	]
//
// Group names must be unique within a batch.
package sample
