// Package artifact serializes collected form values into generated settings
// files and reads them back.
//
// Three output syntaxes are supported, one line per field in schema order:
//
//	if (!defined('API_KEY')) define('API_KEY', 'value');   // constants
//	$apiKey = 'value';                                     // variables
//	    'apiKey' => 'value',                               // returned array
//
// Values are single-quoted literals where backslash and single quote are
// escaped with a backslash. Reading never evaluates the file: each syntax has
// a small grammar parsed by Decode.
package artifact
