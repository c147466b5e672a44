// Package project loads and saves editing sessions as project files.
//
// A project file is UTF-8 JSON with exactly three fields:
//
//	{
//	  "appVersion": "0.4.0",
//	  "audioKeys": ["k1", "k2"],
//	  "audioItems": {
//	    "k1": {"text": "こんにちは", "characterIndex": 0},
//	    "k2": {
//	      "text": "さようなら",
//	      "characterIndex": 1,
//	      "query": {
//	        "accentPhrases": [...],
//	        "speedScale": 1, "pitchScale": 0, "intonationScale": 1,
//	        "volumeScale": 1, "prePhonemeLength": 0.1, "postPhonemeLength": 0.1,
//	        "outputSamplingRate": 24000
//	      }
//	    }
//	  }
//	}
//
// # Loading
//
// Decode runs the load pipeline on raw bytes:
//
//  1. Text decoding (strict UTF-8, or UTF-16 when the file starts with a
//     UTF-16 byte order mark), whitespace trim and JSON decode into a
//     generic tree.
//  2. appVersion must be a string of the form "<int>.<int>.<int>"; the
//     running application's version must parse the same way.
//  3. Migrations whose threshold is newer than the file's appVersion are
//     applied to the tree in order (see Migrations).
//  4. The tree is validated against the embedded JSON Schema
//     (project.schema.json). Unknown fields are rejected.
//  5. The tree is converted to a Document and CheckInvariants verifies that
//     every audio key refers to an item and every referenced item has a
//     characterIndex.
//
// Manager wraps Decode with the file dialogs, the session store and the
// UI lock. Failures are classified by ErrorKind in the logs while the user
// only sees InvalidFileMessage.
//
// # Saving
//
// Manager.SaveProjectFile writes the session snapshot as compact JSON with
// the running application's version. Saved files are not validated.
package project
